package main

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	good = color.New(color.FgGreen).SprintFunc()
	bad  = color.New(color.FgRed).SprintFunc()
	warn = color.New(color.FgYellow).SprintFunc()
)

// entropyVerdict colours an entropy value by how close it is to 8 bits.
func entropyVerdict(e float64) string {
	s := fmt.Sprintf("%.2f", e)
	switch {
	case e >= 7.9:
		return good(s)
	case e >= 7.5:
		return warn(s)
	default:
		return bad(s)
	}
}

func formatPSNR(v *float64) string {
	if v == nil {
		return good("lossless")
	}
	return fmt.Sprintf("%.2f dB", *v)
}

func yesNo(ok bool) string {
	if ok {
		return good("yes")
	}
	return bad("no")
}
