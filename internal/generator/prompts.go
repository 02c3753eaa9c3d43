package generator

// Prompts sent to the text backend, one per kind of message.
const (
	morningWishPrompt       = "Write a short, uplifting morning wish (1-2 sentences). Start with the greeting 'Good morning!'"
	eveningWishPrompt       = "Write a short, warm evening wish (1-2 sentences). Start with the greeting 'Good evening!'"
	motivationalQuotePrompt = "Write a motivational quote and name its author (1-2 sentences)."
	weeklyReflectionPrompt  = "Write a short motivational message about the start of a new week (1-2 sentences)."
	customMotivationPrompt  = "Write a short motivational phrase on the topic: %s (at most 2 sentences)"
)

// Fallback texts returned when the backend fails.
const (
	MorningWishFallback       = "Good morning! May this day bring you joy and success."
	EveningWishFallback       = "Good evening! May this evening be full of warmth and comfort."
	MotivationalQuoteFallback = "Success is stumbling from failure to failure with no loss of enthusiasm. — Winston Churchill"
	WeeklyReflectionFallback  = "A new week means new opportunities! What do you want to achieve this week?"
	customMotivationFallback  = "Believe in yourself! You can handle anything that comes with '%s'."
)
