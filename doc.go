// Package boostviz trains a simplified gradient-boosted regression-tree
// ensemble step by step, so that every intermediate state of the fit can be
// inspected and replayed.
//
// The model works on a single feature. Each boosting round fits a shallow
// threshold tree to the current residuals and adds a shrunken copy of its
// output to the running predictions. Every round is recorded, starting from
// the constant mean baseline.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/boostviz/boosting"
//	    "github.com/YuminosukeSato/boostviz/history"
//	)
//
//	func main() {
//	    params := boosting.DefaultParams()
//	    params.NEstimators = 20
//
//	    res, err := boosting.Run(context.Background(), params)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    cursor, _ := history.FromResult(res)
//	    for {
//	        fmt.Printf("%s: MSE %.3f\n", cursor.Label(), cursor.Current().MSE)
//	        if !cursor.Next() {
//	            break
//	        }
//	    }
//	}
//
// # Packages
//
//   - stats: mean, median, MSE and the split point rule
//   - tree: single-feature threshold trees (Build, Predict, Walk)
//   - dataset: the synthetic sin(x)*x sample set
//   - boosting: Run, RunOn, callbacks and the Regressor estimator
//   - history: playback cursor over the recorded steps
//   - metrics: MSE, RMSE, MAE, R² and explained variance
//   - render: gonum/plot charts and Graphviz tree diagrams
//   - core/model: fitted state shared by estimators
//   - pkg/errors, pkg/log: structured errors and zerolog-backed logging
//
// The boostviz command in cmd/boostviz wires these together.
package boostviz
