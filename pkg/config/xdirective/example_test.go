package xdirective_test

import (
	"fmt"

	"github.com/omeyang/xlogkit/pkg/config/xdirective"
)

func ExampleParseLine() {
	line, err := xdirective.ParseLine(`TRACE,[sinks=sink_a:sink_b,pattern="%v,%v"]`)
	if err != nil {
		fmt.Println("解析失败:", err)
		return
	}
	fmt.Println(line.Value)
	fmt.Println(line.Attributes["sinks"])
	fmt.Println(line.Attributes["pattern"])
	// Output:
	// TRACE
	// sink_a:sink_b
	// %v,%v
}

func ExampleParseLogger() {
	l, err := xdirective.ParseLogger("INFO,[sinks=console:file]")
	if err != nil {
		fmt.Println("解析失败:", err)
		return
	}
	fmt.Println(l.Threshold, l.Sinks)
	// Output: INFO [console file]
}
