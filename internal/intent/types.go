package intent

// Intent is a classified user goal.
type Intent string

// Intents the assistant routes on.
const (
	RegistrationCustomer Intent = "registration_customer"
	RegistrationSupplier Intent = "registration_supplier"
	ProductInquiry       Intent = "product_inquiry"
	KnowledgeQuery       Intent = "knowledge_query"
	ImageGeneration      Intent = "image_generation"
	PlaceOrder           Intent = "place_order"
	CheckCustomerOrders  Intent = "check_customer_orders"
	AddInventory         Intent = "add_inventory"
	CheckStock           Intent = "check_stock"
	CheckSchedule        Intent = "check_schedule"
	FlashSaleCheck       Intent = "flash_sale_check"
	GeneralChat          Intent = "general_chat"
)

// All lists every intent, in the order shown to the classifier model.
var All = []Intent{
	RegistrationCustomer,
	RegistrationSupplier,
	ProductInquiry,
	KnowledgeQuery,
	ImageGeneration,
	PlaceOrder,
	CheckCustomerOrders,
	AddInventory,
	CheckStock,
	CheckSchedule,
	FlashSaleCheck,
	GeneralChat,
}

// Valid reports whether the intent is one the assistant knows.
func (i Intent) Valid() bool {
	for _, known := range All {
		if i == known {
			return true
		}
	}
	return false
}

// Detection is a classified message with any extracted entities.
type Detection struct {
	Intent   Intent                 `json:"intent"`
	Entities map[string]interface{} `json:"entities"`
}
