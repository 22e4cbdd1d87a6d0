package monitor_test

import (
	"fmt"

	"github.com/m6502-lab/monitor"
)

func ExampleCommand_Encode() {
	cmd := monitor.ReadMemory(0x1234)

	data, err := cmd.Encode()
	if err != nil {
		fmt.Println("encode error:", err)
		return
	}

	fmt.Printf("% X\n", data)
	// Output: 4D 12 34
}
