package folio

type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryMinibar    Category = "minibar"
	CategorySpa        Category = "spa"
	CategoryLaundry    Category = "laundry"
	CategoryOther      Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryRestaurant, CategoryMinibar, CategorySpa, CategoryLaundry, CategoryOther:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentSucceeded PaymentStatus = "SUCCEEDED"
	PaymentPending   PaymentStatus = "PENDING"
	PaymentFailed    PaymentStatus = "FAILED"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentSucceeded, PaymentPending, PaymentFailed:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
	MethodOther    PaymentMethod = "other"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodTransfer, MethodOther:
		return true
	default:
		return false
	}
}
