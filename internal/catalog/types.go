package catalog

import "github.com/devwithmohit/aetheros-reasoncore/pkg/planmodel"

// defaultToolSpecs is the closed ~26-entry tool table. Names mirror the
// teacher's own tool surface (internal/tools/* subpackages each map to
// one assistant action — browser, exec, files, reminders,
// homeassistant, jobs, message, facts) per SPEC_FULL.md §4.2.
var defaultToolSpecs = []planmodel.ToolSpec{
	{
		Type:        planmodel.ToolOpenApplication,
		Description: "Open a named application on the user's device.",
		BaseRisk:    planmodel.RiskLow,
		Parameters: []planmodel.ParamSpec{
			{Name: "app_name", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolCloseApplication,
		Description: "Close a named application.",
		BaseRisk:    planmodel.RiskLow,
		Parameters: []planmodel.ParamSpec{
			{Name: "app_name", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolWebSearch,
		Description: "Search the web for a query and return top results.",
		BaseRisk:    planmodel.RiskLow,
		Parameters: []planmodel.ParamSpec{
			{Name: "query", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolGetWeather,
		Description: "Fetch current weather for a location.",
		BaseRisk:    planmodel.RiskLow,
		Parameters: []planmodel.ParamSpec{
			{Name: "location", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolSendEmail,
		Description: "Send an email on the user's behalf.",
		BaseRisk:    planmodel.RiskHigh,
		RequiresConfirmation: true,
		Parameters: []planmodel.ParamSpec{
			{Name: "to", Type: planmodel.ParamString, Required: true},
			{Name: "subject", Type: planmodel.ParamString, Required: true},
			{Name: "body", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolSendMessage,
		Description: "Send a chat message to a contact or channel.",
		BaseRisk:    planmodel.RiskMedium,
		Parameters: []planmodel.ParamSpec{
			{Name: "recipient", Type: planmodel.ParamString, Required: true},
			{Name: "body", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolSetReminder,
		Description: "Create a reminder for the user at a future time.",
		BaseRisk:    planmodel.RiskLow,
		Parameters: []planmodel.ParamSpec{
			{Name: "text", Type: planmodel.ParamString, Required: true},
			{Name: "time", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolSetTimer,
		Description: "Start a countdown timer.",
		BaseRisk:    planmodel.RiskLow,
		Parameters: []planmodel.ParamSpec{
			{Name: "duration_seconds", Type: planmodel.ParamNumber, Required: true},
		},
	},
	{
		Type:        planmodel.ToolCreateCalendarEvent,
		Description: "Create a calendar event.",
		BaseRisk:    planmodel.RiskMedium,
		Parameters: []planmodel.ParamSpec{
			{Name: "title", Type: planmodel.ParamString, Required: true},
			{Name: "start_time", Type: planmodel.ParamString, Required: true},
			{Name: "end_time", Type: planmodel.ParamString, Required: false},
		},
	},
	{
		Type:        planmodel.ToolSystemControl,
		Description: "Adjust a system-level setting (brightness, do-not-disturb, etc).",
		BaseRisk:    planmodel.RiskMedium,
		Parameters: []planmodel.ParamSpec{
			{Name: "setting", Type: planmodel.ParamString, Required: true},
			{Name: "value", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:                 planmodel.ToolSystemShutdown,
		Description:          "Shut down or restart the device. Blocked by default.",
		BaseRisk:             planmodel.RiskCritical,
		RequiresConfirmation: true,
		Parameters:           nil,
	},
	{
		Type:                 planmodel.ToolFormatDrive,
		Description:          "Format a storage drive. Blocked by default.",
		BaseRisk:             planmodel.RiskCritical,
		RequiresConfirmation: true,
		Parameters: []planmodel.ParamSpec{
			{Name: "drive", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:                 planmodel.ToolDeleteFile,
		Description:          "Delete a file from disk. Blocked by default.",
		BaseRisk:             planmodel.RiskCritical,
		RequiresConfirmation: true,
		Parameters: []planmodel.ParamSpec{
			{Name: "path", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolReadFile,
		Description: "Read the contents of a file.",
		BaseRisk:    planmodel.RiskMedium,
		Parameters: []planmodel.ParamSpec{
			{Name: "path", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolWriteFile,
		Description: "Write content to a file.",
		BaseRisk:    planmodel.RiskHigh,
		RequiresConfirmation: true,
		Parameters: []planmodel.ParamSpec{
			{Name: "path", Type: planmodel.ParamString, Required: true},
			{Name: "content", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:                 planmodel.ToolRunShellCommand,
		Description:          "Run an arbitrary shell command.",
		BaseRisk:             planmodel.RiskCritical,
		RequiresConfirmation: true,
		Parameters: []planmodel.ParamSpec{
			{Name: "command", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolDatabaseQuery,
		Description: "Run a read-only query against an internal database.",
		BaseRisk:    planmodel.RiskHigh,
		Parameters: []planmodel.ParamSpec{
			{Name: "query", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolHomeAssistant,
		Description: "Control a Home Assistant entity (lights, locks, thermostats).",
		BaseRisk:    planmodel.RiskMedium,
		Parameters: []planmodel.ParamSpec{
			{Name: "entity_id", Type: planmodel.ParamString, Required: true},
			{Name: "action", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolGetNews,
		Description: "Fetch top news headlines, optionally filtered by topic.",
		BaseRisk:    planmodel.RiskLow,
		Parameters: []planmodel.ParamSpec{
			{Name: "topic", Type: planmodel.ParamString, Required: false},
		},
	},
	{
		Type:        planmodel.ToolTranslateText,
		Description: "Translate text into a target language.",
		BaseRisk:    planmodel.RiskLow,
		Parameters: []planmodel.ParamSpec{
			{Name: "text", Type: planmodel.ParamString, Required: true},
			{Name: "target_language", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolPlayMedia,
		Description: "Play a media item (song, podcast, video) on a device.",
		BaseRisk:    planmodel.RiskLow,
		Parameters: []planmodel.ParamSpec{
			{Name: "media_query", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolAdjustVolume,
		Description: "Adjust playback or system volume.",
		BaseRisk:    planmodel.RiskLow,
		Parameters: []planmodel.ParamSpec{
			{Name: "level", Type: planmodel.ParamNumber, Required: true},
		},
	},
	{
		Type:        planmodel.ToolTakeScreenshot,
		Description: "Capture a screenshot of the current display.",
		BaseRisk:    planmodel.RiskMedium,
		Parameters:  nil,
	},
	{
		Type:        planmodel.ToolGetLocation,
		Description: "Fetch the user's current approximate location.",
		BaseRisk:    planmodel.RiskMedium,
		Parameters:  nil,
	},
	{
		Type:        planmodel.ToolQueryKnowledgeBase,
		Description: "Query the assistant's long-term knowledge base.",
		BaseRisk:    planmodel.RiskLow,
		Parameters: []planmodel.ParamSpec{
			{Name: "query", Type: planmodel.ParamString, Required: true},
		},
	},
	{
		Type:        planmodel.ToolCreateNote,
		Description: "Create a text note.",
		BaseRisk:    planmodel.RiskLow,
		Parameters: []planmodel.ParamSpec{
			{Name: "text", Type: planmodel.ParamString, Required: true},
		},
	},
}

// defaultCandidates maps known intent names to an ordered tool-type
// hint list, used only to bias prompt assembly (§4.2) — never to
// restrict what the planner may actually invoke.
var defaultCandidates = map[string][]planmodel.ToolType{
	"get_weather": {planmodel.ToolGetWeather},
	"open_application_and_search": {
		planmodel.ToolOpenApplication,
		planmodel.ToolWebSearch,
	},
	"database_query":   {planmodel.ToolDatabaseQuery},
	"send_email":        {planmodel.ToolSendEmail},
	"send_message":      {planmodel.ToolSendMessage},
	"set_reminder":      {planmodel.ToolSetReminder},
	"set_timer":         {planmodel.ToolSetTimer},
	"create_event":      {planmodel.ToolCreateCalendarEvent},
	"home_automation":   {planmodel.ToolHomeAssistant},
	"get_news":          {planmodel.ToolGetNews},
	"translate":         {planmodel.ToolTranslateText},
	"play_media":        {planmodel.ToolPlayMedia},
	"adjust_volume":     {planmodel.ToolAdjustVolume},
	"take_screenshot":   {planmodel.ToolTakeScreenshot},
	"get_location":      {planmodel.ToolGetLocation},
	"query_knowledge":   {planmodel.ToolQueryKnowledgeBase},
	"create_note":       {planmodel.ToolCreateNote},
	"web_search":        {planmodel.ToolWebSearch},
	"open_application":  {planmodel.ToolOpenApplication},
	"close_application": {planmodel.ToolCloseApplication},
	"read_file":         {planmodel.ToolReadFile},
	"write_file":        {planmodel.ToolWriteFile},
	"run_shell_command": {planmodel.ToolRunShellCommand},
	"system_control":    {planmodel.ToolSystemControl},
}
