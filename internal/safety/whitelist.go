package safety

import "github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"

// Whitelist is the first pipeline stage: a tool must be registered and
// not appear on the block list. The block list exists independently of
// the catalog's base risk class so an operator can ban a tool outright
// without having to reclassify its risk.
type Whitelist struct {
	blocked map[planmodel.ToolType]string
}

// DefaultBlockedTools are the destructive ToolTypes blocked out of the
// box, per spec: SYSTEM_SHUTDOWN, FORMAT_DRIVE, DELETE_FILE and
// similar.
func DefaultBlockedTools() map[planmodel.ToolType]string {
	return map[planmodel.ToolType]string{
		planmodel.ToolSystemShutdown:  "destructive operation is blocked by default policy",
		planmodel.ToolFormatDrive:     "destructive operation is blocked by default policy",
		planmodel.ToolDeleteFile:      "destructive operation is blocked by default policy",
		planmodel.ToolRunShellCommand: "unrestricted shell execution is blocked by default policy",
	}
}

// NewWhitelist constructs a Whitelist with the given block list. A nil
// map falls back to DefaultBlockedTools.
func NewWhitelist(blocked map[planmodel.ToolType]string) *Whitelist {
	if blocked == nil {
		blocked = DefaultBlockedTools()
	}
	return &Whitelist{blocked: blocked}
}

// Check returns a block reason if tool is disallowed, or "" if it may
// proceed to the next stage.
func (w *Whitelist) Check(tool planmodel.ToolType) (reason string, blocked bool) {
	if tool == planmodel.ToolUnknown {
		return "unknown tool", true
	}
	if reason, ok := w.blocked[tool]; ok {
		return reason, true
	}
	return "", false
}
