package convo

// User-facing replies. The transport delivers these verbatim.
const (
	msgWelcome        = "Welcome to the TODO bot! Use /add to create a task."
	msgPromptName     = "Enter a task name:"
	msgPromptTime     = "Enter a time (YYYY-MM-DD HH:MM) or reply `skip`:"
	msgPromptPriority = "Enter a priority (low/medium/high):"
	msgBadTime        = "❌ Invalid format. Use YYYY-MM-DD HH:MM or reply `skip`."
	msgBadPriority    = "Reply with low, medium or high:"
	msgAdded          = "✅ Task added!"
	msgNoTasks        = "You have no tasks."
	msgPromptComplete = "Reply with the number of the task to complete:"
	msgPromptDelete   = "Reply with the number of the task to delete:"
	msgBadSelection   = "❌ Invalid task number."
	msgCompletedFmt   = "✅ Task completed: %s"
	msgDeleted        = "🗑 Task deleted."
	msgAborted        = "Too many invalid replies, cancelled. Use /add to start again."
	msgReminderFmt    = "⏰ Reminder: %s"
)
