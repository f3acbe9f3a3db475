package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lcalzada-xor/tailcall/pkg/models"
)

// Format returns the formatted result string based on the selected format
func Format(res models.Result, format string) string {
	switch format {
	case "human":
		return formatHuman(res)

	case "json":
		output, err := json.Marshal(res)
		if err != nil {
			// Return error as JSON instead of empty string
			return fmt.Sprintf("{\"error\":\"failed to marshal result: %v\"}", err)
		}
		return string(output)

	default:
		// Code format: the rewritten source, ready to be piped or written.
		if res.Error != "" {
			return ""
		}
		return res.Code
	}
}

// Human-readable format (Purple Gothic Theme)
const (
	cPurple      = "\x1b[38;5;129m"
	cLightPurple = "\x1b[38;5;141m"
	cDarkPurple  = "\x1b[38;5;93m"
	cRed         = "\x1b[38;5;196m"
	cOrange      = "\x1b[38;5;214m"
	cBlue        = "\x1b[38;5;45m"
	cReset       = "\x1b[0m"
)

func formatHuman(res models.Result) string {
	var sb strings.Builder

	if res.Error != "" {
		sb.WriteString(fmt.Sprintf("\n%s[!] Rewrite Failed%s\n", cRed, cReset))
		sb.WriteString(fmt.Sprintf("    %sInput:%s      %s%s%s\n", cDarkPurple, cReset, cLightPurple, res.Input, cReset))
		sb.WriteString(fmt.Sprintf("    %sError:%s      %s%s%s\n", cDarkPurple, cReset, cRed, res.Error, cReset))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("\n%s[+] Tail Calls Eliminated%s\n", cPurple, cReset))
	sb.WriteString(fmt.Sprintf("    %sInput:%s      %s%s%s\n", cDarkPurple, cReset, cLightPurple, res.Input, cReset))
	sb.WriteString(fmt.Sprintf("    %sKind:%s       %s%s%s\n", cDarkPurple, cReset, cLightPurple, res.Kind, cReset))
	if res.Kind == models.KindHTML {
		sb.WriteString(fmt.Sprintf("    %sScripts:%s    %s%d%s\n", cDarkPurple, cReset, cLightPurple, res.Scripts, cReset))
	}

	// Optimised count in orange when nothing was converted
	countColor := cLightPurple
	if res.Optimised() == 0 {
		countColor = cOrange
	}
	sb.WriteString(fmt.Sprintf("    %sOptimised:%s  %s%d/%d%s\n", cDarkPurple, cReset, countColor, res.Optimised(), len(res.Functions), cReset))

	if len(res.Functions) > 0 {
		sb.WriteString(fmt.Sprintf("\n    %sFunctions:%s\n", cDarkPurple, cReset))
		for _, f := range res.Functions {
			mark, color := "-", cBlue
			if f.TailRecursive {
				mark, color = "+", cPurple
			}
			sb.WriteString(fmt.Sprintf("      %s[%s] %s(%s)%s\n", color, mark, f.Name, strings.Join(f.Params, ", "), cReset))
			if f.TailRecursive {
				sb.WriteString(fmt.Sprintf("             %sTail calls:%s %d\n", cDarkPurple, cReset, f.TailCalls))
			}
			if len(f.TempVars) > 0 {
				sb.WriteString(fmt.Sprintf("             %sTemps:%s %s\n", cDarkPurple, cReset, strings.Join(f.TempVars, ", ")))
			}
			if len(f.Hoisted) > 0 {
				sb.WriteString(fmt.Sprintf("             %sHoisted:%s %s\n", cDarkPurple, cReset, strings.Join(f.Hoisted, ", ")))
			}
			if f.Strict {
				sb.WriteString(fmt.Sprintf("             %sStrict:%s true\n", cDarkPurple, cReset))
			}
		}
	}

	if v := res.Verification; v != nil {
		sb.WriteString(fmt.Sprintf("\n    %sVerification (%s):%s\n", cDarkPurple, v.Args, cReset))
		sb.WriteString(fmt.Sprintf("      %sOriginal:%s  %s\n", cDarkPurple, cReset, outcome(v.Original, v.OriginalError, v.OriginalOverflow)))
		sb.WriteString(fmt.Sprintf("      %sOptimised:%s %s\n", cDarkPurple, cReset, outcome(v.Optimised, v.OptimisedError, v.OptimisedOverflow)))
		equalColor := cLightPurple
		if !v.Equal {
			equalColor = cRed
		}
		sb.WriteString(fmt.Sprintf("      %sEqual:%s     %s%v%s\n", cDarkPurple, cReset, equalColor, v.Equal, cReset))
	}
	return sb.String()
}

func outcome(value, err string, overflow bool) string {
	switch {
	case overflow:
		return cOrange + "stack overflow" + cReset
	case err != "":
		return cRed + err + cReset
	}
	return cLightPurple + value + cReset
}
