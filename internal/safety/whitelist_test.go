package safety

import (
	"testing"

	"github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"
)

func TestWhitelistBlocksDefaultDestructiveTools(t *testing.T) {
	w := NewWhitelist(nil)
	for _, tool := range []planmodel.ToolType{planmodel.ToolSystemShutdown, planmodel.ToolFormatDrive, planmodel.ToolDeleteFile, planmodel.ToolRunShellCommand} {
		if _, blocked := w.Check(tool); !blocked {
			t.Errorf("expected %s to be blocked by default", tool)
		}
	}
}

func TestWhitelistAllowsBenignTool(t *testing.T) {
	w := NewWhitelist(nil)
	if _, blocked := w.Check(planmodel.ToolGetWeather); blocked {
		t.Error("expected GET_WEATHER to be allowed")
	}
}

func TestWhitelistBlocksUnknownTool(t *testing.T) {
	w := NewWhitelist(nil)
	if _, blocked := w.Check(planmodel.ToolUnknown); !blocked {
		t.Error("expected unknown tool to be blocked")
	}
}

func TestWhitelistCustomBlockListOverridesDefault(t *testing.T) {
	w := NewWhitelist(map[planmodel.ToolType]string{planmodel.ToolGetWeather: "disabled for this deployment"})
	if _, blocked := w.Check(planmodel.ToolGetWeather); !blocked {
		t.Error("expected custom block list entry to take effect")
	}
	if _, blocked := w.Check(planmodel.ToolSystemShutdown); blocked {
		t.Error("expected custom block list to fully replace defaults")
	}
}
