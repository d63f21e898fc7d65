package domain

// MessageType identifies the purpose of an outbound WhatsApp campaign. The
// set is closed: every type carries its own template categories and an
// optional order-status transition applied after a confirmed send.
type MessageType string

const (
	MessageTypeConfirmation MessageType = "confirmation"
	MessageTypeReturn       MessageType = "return"
	MessageTypeCancelled    MessageType = "cancelled"
	MessageTypeValued       MessageType = "valued"
	MessageTypeTracking     MessageType = "tracking"
)

// CategorySet names the template category backing each slot of a composed
// message, in slot order. An empty Line means the slot is not drawn from
// templates; the composer fills it with literal order data (tracking type).
type CategorySet struct {
	Greeting string
	Intro    string
	Line     string
	Request  string
	Closing  string
}

type messageTypeSpec struct {
	categories CategorySet
	transition string
}

var messageTypes = map[MessageType]messageTypeSpec{
	MessageTypeConfirmation: {
		categories: CategorySet{
			Greeting: "greetings",
			Intro:    "intros",
			Line:     "order_lines",
			Request:  "confirmation_requests",
			Closing:  "closings",
		},
		transition: OrderStatusConfirmed,
	},
	MessageTypeReturn: {
		categories: CategorySet{
			Greeting: "return_greetings",
			Intro:    "intros",
			Line:     "return_lines",
			Request:  "return_requests",
			Closing:  "closings",
		},
	},
	MessageTypeCancelled: {
		categories: CategorySet{
			Greeting: "greetings",
			Intro:    "intros",
			Line:     "cancelled_lines",
			Request:  "cancelled_requests",
			Closing:  "closings",
		},
	},
	MessageTypeValued: {
		categories: CategorySet{
			Greeting: "greetings",
			Intro:    "intros",
			Line:     "valued_lines",
			Request:  "valued_requests",
			Closing:  "closings",
		},
	},
	MessageTypeTracking: {
		categories: CategorySet{
			Greeting: "greetings",
			Intro:    "intros",
			Request:  "tracking_requests",
			Closing:  "closings",
		},
	},
}

// ParseMessageType reports ok=false for values outside the closed set; an
// unrecognized type is a caller-input error, never a campaign failure.
func ParseMessageType(s string) (MessageType, bool) {
	t := MessageType(s)
	_, ok := messageTypes[t]
	return t, ok
}

func (t MessageType) Categories() CategorySet {
	return messageTypes[t].categories
}

// Transition returns the order status applied after a confirmed send, and
// whether this type defines one.
func (t MessageType) Transition() (string, bool) {
	def := messageTypes[t]
	return def.transition, def.transition != ""
}

func (t MessageType) String() string {
	return string(t)
}
