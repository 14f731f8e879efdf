package orchestrator

// Reply types
const (
	ReplyTypeText  = "text"
	ReplyTypeImage = "image"
)

// Log prefixes
const (
	logPrefixProcessTurn = "chat.orchestrator.ProcessTurn"
	logPrefixPayment     = "chat.orchestrator.confirmPayment"
)

// Tools the orchestrator gives special treatment to.
const (
	toolRegisterUser  = "register_user"
	toolCreateOrder   = "create_order"
	toolGenerateImage = "generate_product_image"
)

// System prompt template. Filled with user type, registration state, name and
// the current flow summary.
const systemPromptTemplate = `You are an Ethiopian horticulture marketplace assistant.

USER CONTEXT: user_type=%s, registered=%t, name=%s
CURRENT STATE: flow=%s, awaiting=%t

Core guidelines:
- Be concise, friendly, and practical. Prices are in ETB unless stated otherwise.
- Customers: discover products, answer knowledge questions, and help place orders.
- Suppliers: add/check inventory, provide pricing insights, schedules, and flash sale suggestions.
- Use tools proactively when data is needed, then produce a clear final answer.
- Never ask the user for start/end dates. Resolve phrases like 'today', 'tomorrow', 'this week' or 'next week' yourself with the get_current_time tool and pass derived ISO dates to schedule and order tools.
- Product and category names must match the catalog's canonical values. When a name looks misspelled or translated, call search_products first and proceed with the closest match, briefly acknowledging the correction.
- For add_inventory only product_name, quantity_kg, price_per_unit and available_date are required; expiry_date is optional, never ask for it.
- Confirm critical actions (orders, price changes) before finalizing, summarizing items, dates, totals and locations.
- Do not reveal tool internals; never print function names or raw JSON.`

// Hint appended to unregistered users' context so the model collects
// registration details before transactional flows.
const registrationHint = `
The user is NOT registered yet. Before placing orders or adding inventory,
collect their phone number (and optionally name and location) and call
register_user.`

// User-facing messages
const (
	msgApology          = "Sorry, I ran into a problem handling that. Please try again."
	msgPaymentConfirmed = "✅ Payment confirmed for order %s. Thank you for shopping with us!"
)

// Prompt nudging the model out of a blank turn.
const msgFinalizeNudge = "Finalize your answer to the user's last message now. Provide a concise, helpful reply without calling tools."

// Defaults applied when the config leaves fields zero.
const (
	defaultMaxToolIterations = 3
	defaultHistoryWindow     = 10
	defaultPaymentDelay      = 5 // seconds
)
