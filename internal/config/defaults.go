package config

import "time"

// Task names known to the scheduler registry.
const (
	TaskMorningDelivery = "morning_delivery"
	TaskEveningDelivery = "evening_delivery"
	TaskSQLMaintenance  = "sql_maintenance"
)

const (
	defaultScanInterval = 30 * time.Second
	defaultSendPause    = 2 * time.Second
)

const defaultHelp = `Here are the commands you can use:
/start - Start working with the bot
/help - Show this help
/subscribe - Subscribe to daily messages
/unsubscribe - Unsubscribe from daily messages
/motivate - Get a motivational quote right now
/wish - Get a kind wish right now
/custom <topic> - Get motivation on a topic
/settings - Delivery settings
/set_morning HH:MM - Set morning message time
/set_evening HH:MM - Set evening message time
/toggle_morning - Turn morning messages on/off
/toggle_evening - Turn evening messages on/off
/toggle_motivation - Turn motivational quotes on/off`

const defaultSettings = `Delivery settings:
1. To set the morning message time send: /set_morning HH:MM
2. To set the evening message time send: /set_evening HH:MM
3. To turn morning messages on/off: /toggle_morning
4. To turn evening messages on/off: /toggle_evening
5. To turn motivational quotes on/off: /toggle_motivation

Current settings:
- Morning wishes: %s (%s)
- Evening wishes: %s (%s)
- Motivational quotes: %s`

var defaults = map[string]any{
	"logger.level": "info",
	"logger.json":  false,

	"gemini.model_name":          "gemini-2.0-flash",
	"gemini.temperature":         1.0,
	"gemini.system_instruction":  "",
	"gemini.max_retries":         0,
	"gemini.retry_delay_seconds": 2,
	"gemini.request_timeout":     30 * time.Second,
	"gemini.breaker_failures":    5,
	"gemini.breaker_reset":       time.Minute,

	"database.path": "",

	"scheduler.timezone":   "",
	"scheduler.send_pause": defaultSendPause,

	"scheduler.tasks." + TaskMorningDelivery + ".enabled":  true,
	"scheduler.tasks." + TaskMorningDelivery + ".schedule": "",
	"scheduler.tasks." + TaskMorningDelivery + ".interval": defaultScanInterval,
	"scheduler.tasks." + TaskEveningDelivery + ".enabled":  true,
	"scheduler.tasks." + TaskEveningDelivery + ".schedule": "",
	"scheduler.tasks." + TaskEveningDelivery + ".interval": defaultScanInterval,
	"scheduler.tasks." + TaskSQLMaintenance + ".enabled":   true,
	"scheduler.tasks." + TaskSQLMaintenance + ".schedule":  "0 0 3 * * *",
	"scheduler.tasks." + TaskSQLMaintenance + ".interval":  time.Duration(0),

	"messages.welcome": "Hi! I'm the daily motivation and wishes bot. " +
		"I'll send you motivational messages and kind wishes every day using Google Gemini. " +
		"To subscribe, use /subscribe. For more information use /help.",
	"messages.help":       defaultHelp,
	"messages.subscribed": "You have subscribed to daily motivational messages! " +
		"By default you will get morning wishes at 08:00 and evening wishes at 20:00. " +
		"Use /settings to change them.",
	"messages.already_subscribed": "You are already subscribed. Use /settings to change your settings.",
	"messages.unsubscribed":       "You have unsubscribed. If you want to come back, use /subscribe.",
	"messages.not_subscribed":     "You were not subscribed.",
	"messages.subscribe_first":    "Please subscribe first with /subscribe.",
	"messages.generating_quote":   "Generating a motivational quote...",
	"messages.generating_wish":    "Generating a wish...",
	"messages.generating_custom":  "Generating motivation on '%s'...",
	"messages.custom_usage":       "Please provide a topic. For example: /custom studying",
	"messages.settings":           defaultSettings,
	"messages.set_morning_done":   "Morning message time set to %s.",
	"messages.set_morning_usage":  "Please give the time as HH:MM. For example: /set_morning 07:30",
	"messages.set_evening_done":   "Evening message time set to %s.",
	"messages.set_evening_usage":  "Please give the time as HH:MM. For example: /set_evening 20:30",
	"messages.toggle_morning":     "Morning messages %s.",
	"messages.toggle_evening":     "Evening messages %s.",
	"messages.toggle_motivation":  "Motivational quotes %s.",
	"messages.enabled":            "enabled",
	"messages.disabled":           "disabled",
	"messages.unknown_command":    "Sorry, I don't understand this command. Use /help to see the available commands.",
	"messages.general_error":      "An error occurred. Please try again later.",
}
