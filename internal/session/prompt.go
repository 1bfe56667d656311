package session

import (
	"fmt"
	"strings"
)

// BuildPrompt assembles the synthesis request: the task's fixed inputs
// plus, on continuation, the full transcript of prior attempts so the
// assistant sees the complete failure trail.
func BuildPrompt(task Task, attempts []Attempt) string {
	var b strings.Builder
	b.WriteString("Write a jq script that transforms the input JSON into the desired output.\n")
	b.WriteString("\nInput JSON:\n")
	b.Write(task.Input)
	b.WriteString("\n\nDesired output:\n")
	b.Write(task.Desired)
	b.WriteString("\n")
	if task.Instructions != "" {
		b.WriteString("\nAdditional instructions: ")
		b.WriteString(task.Instructions)
		b.WriteString("\n")
	}

	if len(attempts) > 0 {
		b.WriteString("\nPrevious attempts that did not work:\n")
		for _, a := range attempts {
			fmt.Fprintf(&b, "\nAttempt %d:\n%s\n", a.Index, a.Script)
			if a.Valid {
				b.WriteString("Result: valid but did not match the desired output\n")
			} else {
				fmt.Fprintf(&b, "Error: %s\n", a.ErrorMessage)
			}
		}
		b.WriteString("\nReply with a corrected jq script.\n")
	}
	return b.String()
}
