// Package logger provides adapters for popular logger libraries to work with bptree's Logger interface.
//
// The standard library's slog.Logger already implements bptree.Logger directly.
//
// Example with zap:
//
//	import (
//	    "github.com/alexhholmes/bptree"
//	    "github.com/alexhholmes/bptree/logger"
//	    "go.uber.org/zap"
//	)
//
//	func main() {
//	    zapLogger, _ := zap.NewDevelopment()
//
//	    tree, err := bptree.New(bptree.WithLogger(logger.NewZap(zapLogger)))
//	    if err != nil {
//	        panic(err)
//	    }
//	    _, _ = tree.Insert(1, 100)
//	}
package logger
