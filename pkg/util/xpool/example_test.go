package xpool_test

import (
	"fmt"

	"github.com/omeyang/xlogkit/pkg/util/xpool"
)

func ExampleNew() {
	p, err := xpool.New(1, 16, func(msg string) {
		fmt.Println("handled:", msg)
	},
		xpool.WithOnStart(func() { fmt.Println("worker started") }),
		xpool.WithOnStop(func() { fmt.Println("worker stopped") }),
	)
	if err != nil {
		fmt.Println("创建失败:", err)
		return
	}

	_ = p.Submit("a")
	_ = p.Submit("b")
	_ = p.Close()
	// Output:
	// worker started
	// handled: a
	// handled: b
	// worker stopped
}
