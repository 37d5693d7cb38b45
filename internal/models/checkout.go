package models

type CheckoutStep string

const (
	StepShipping     CheckoutStep = "shipping"
	StepPayment      CheckoutStep = "payment"
	StepConfirmation CheckoutStep = "confirmation"
)

func (s CheckoutStep) IsTerminal() bool {
	return s == StepConfirmation
}

func (s CheckoutStep) String() string {
	return string(s)
}

type ShippingInfo struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
}

// PaymentInfo is ephemeral: it is checked structurally and never persisted
// or serialized anywhere. No real payment authorization happens here.
type PaymentInfo struct {
	CardNumber string `json:"-"`
	Expiry     string `json:"-"`
	CVV        string `json:"-"`
}

type CheckoutForm struct {
	Shipping ShippingInfo
	Payment  PaymentInfo
}

// FormField names an editable checkout field, as used for per-field error
// flags and field updates from the presentation layer.
type FormField string

const (
	FieldFullName    FormField = "full_name"
	FieldEmail       FormField = "email"
	FieldAddressLine FormField = "address_line"
	FieldCity        FormField = "city"
	FieldPostalCode  FormField = "postal_code"
	FieldCardNumber  FormField = "card_number"
	FieldExpiry      FormField = "expiry"
	FieldCVV         FormField = "cvv"
)

type FieldErrors map[FormField]bool

func (e FieldErrors) Any() bool {
	return len(e) > 0
}

// CheckoutState is the read model the presentation layer renders from.
type CheckoutState struct {
	Step       CheckoutStep `json:"step"`
	Submitting bool         `json:"submitting"`
	OrderID    string       `json:"order_id,omitempty"`
	Errors     FieldErrors  `json:"errors,omitempty"`
	Shipping   ShippingInfo `json:"shipping"`
	Summary    CartSnapshot `json:"summary"`
}

type UpdateFieldRequest struct {
	Field FormField `json:"field" validate:"required"`
	Value string    `json:"value"`
}
