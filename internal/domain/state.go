package domain

// CustomerStep is the current position in the customer flows
type CustomerStep string

const (
	CustomerIdle          CustomerStep = "idle"
	CustomerOrderPhone    CustomerStep = "order_phone"
	CustomerCategory      CustomerStep = "order_category"
	CustomerDescription   CustomerStep = "order_description"
	CustomerAddress       CustomerStep = "order_address"
	CustomerDate          CustomerStep = "order_date"
	CustomerCallbackPhone CustomerStep = "callback_phone"
)

// CustomerState holds a customer's step and the answers collected so far
type CustomerState struct {
	Step  CustomerStep
	Draft OrderDraft
}

// ExecutorStep is the current position in the registration flow
type ExecutorStep string

const (
	ExecutorIdle              ExecutorStep = "idle"
	ExecutorAwaitingName      ExecutorStep = "awaiting_name"
	ExecutorAwaitingPhone     ExecutorStep = "awaiting_phone"
	ExecutorPickingCategories ExecutorStep = "picking_categories"
)

// ExecutorState holds registration answers collected so far
type ExecutorState struct {
	Step     ExecutorStep
	Name     string
	Phone    string
	Selected CategorySet
}
