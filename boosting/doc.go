// Package boosting runs a step-by-step gradient-boosted regression-tree
// ensemble on 1-D data and records every intermediate state for playback.
//
// Each round fits a tree.Tree to the current residuals and moves the running
// predictions by LearningRate times the tree's output:
//
//	res, err := boosting.Run(ctx, boosting.DefaultParams())
//	if err != nil {
//	    return err
//	}
//	for i, step := range res.History {
//	    fmt.Printf("step %d: mse=%.3f\n", i, step.MSE)
//	}
//
// Step 0 of the history is the constant mean baseline and carries no tree.
// Step k (k >= 1) is the state after tree k-1 was added. Every RunResult owns
// its slices; a new run never touches a previous one.
package boosting
