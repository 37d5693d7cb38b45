package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/luxe-commerce/storefront/internal/errors"
	"github.com/luxe-commerce/storefront/internal/models"
	"github.com/luxe-commerce/storefront/pkg/sendgrid"
)

const minCardNumberLength = 13

// CheckoutWorkflow walks the shopper through Shipping -> Payment ->
// Confirmation. Each advance is gated on field validation; the final advance
// submits the order and always reaches Confirmation, because the submitter
// absorbs failure. At most one submission can be in flight: a re-entrant
// advance is rejected, and Close is refused until the submission settles.
type CheckoutWorkflow struct {
	cart          *CartService
	submitter     *OrderSubmitter
	mailer        sendgrid.EmailService // nil disables confirmation email
	submitTimeout time.Duration         // 0 means unbounded wait

	mu         sync.Mutex
	step       models.CheckoutStep
	form       models.CheckoutForm
	fieldErrs  models.FieldErrors
	snapshot   models.CartSnapshot
	submitting bool
	orderID    string
}

func NewCheckoutWorkflow(cart *CartService, submitter *OrderSubmitter, mailer sendgrid.EmailService, submitTimeout time.Duration) *CheckoutWorkflow {
	return &CheckoutWorkflow{
		cart:          cart,
		submitter:     submitter,
		mailer:        mailer,
		submitTimeout: submitTimeout,
		step:          models.StepShipping,
		fieldErrs:     models.FieldErrors{},
	}
}

// Open starts (or resumes) a checkout session, capturing the cart snapshot
// that the rest of the workflow reads from.
func (w *CheckoutWorkflow) Open() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submitting || w.step != models.StepShipping {
		return
	}

	w.snapshot = w.cart.Snapshot()
}

// SetField updates one form field and clears that field's error flag.
// Ignored while a submission is in flight or after confirmation.
func (w *CheckoutWorkflow) SetField(field models.FormField, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submitting || w.step.IsTerminal() {
		return
	}

	switch field {
	case models.FieldFullName:
		w.form.Shipping.FullName = value
	case models.FieldEmail:
		w.form.Shipping.Email = value
	case models.FieldAddressLine:
		w.form.Shipping.AddressLine = value
	case models.FieldCity:
		w.form.Shipping.City = value
	case models.FieldPostalCode:
		w.form.Shipping.PostalCode = value
	case models.FieldCardNumber:
		w.form.Payment.CardNumber = value
	case models.FieldExpiry:
		w.form.Payment.Expiry = value
	case models.FieldCVV:
		w.form.Payment.CVV = value
	default:
		return
	}

	delete(w.fieldErrs, field)
}

// Next drives the forward transition for the current step. Validation
// failures are not errors: the step holds and the per-field flags are set.
// The only error Next returns is the rejection of a re-entrant advance while
// a submission is in flight.
func (w *CheckoutWorkflow) Next(ctx context.Context) (models.CheckoutStep, error) {
	w.mu.Lock()

	switch w.step {
	case models.StepShipping:
		if errs := ValidateShipping(w.form.Shipping); errs.Any() {
			w.fieldErrs = errs
			defer w.mu.Unlock()

			return w.step, nil
		}

		// Re-read the cart here: the shopper can keep editing it while the
		// shipping form is on screen.
		w.snapshot = w.cart.Snapshot()
		w.step = models.StepPayment
		defer w.mu.Unlock()

		return w.step, nil

	case models.StepPayment:
		if errs := ValidatePayment(w.form.Payment); errs.Any() {
			w.fieldErrs = errs
			defer w.mu.Unlock()

			return w.step, nil
		}

		if w.submitting {
			defer w.mu.Unlock()

			return w.step, errors.ConflictError("A submission is already in progress")
		}

		w.submitting = true
		snapshot := w.snapshot
		shipping := w.form.Shipping
		w.mu.Unlock()

		w.submit(ctx, snapshot, shipping)

		w.mu.Lock()
		defer w.mu.Unlock()

		return w.step, nil

	default:
		// Confirmation is terminal.
		defer w.mu.Unlock()

		return w.step, nil
	}
}

// submit runs the order submission to completion and settles the workflow in
// Confirmation. Called without the lock held; the submitting flag keeps the
// machine exclusive in the meantime.
func (w *CheckoutWorkflow) submit(ctx context.Context, snapshot models.CartSnapshot, shipping models.ShippingInfo) {
	sctx := ctx
	if w.submitTimeout > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, w.submitTimeout)
		defer cancel()
	}

	orderID := w.submitter.Submit(sctx, snapshot, shipping)

	w.cart.Clear(ctx)

	if w.mailer != nil {
		if err := w.mailer.SendOrderConfirmation(ctx, shipping.Email, orderID, snapshot.Total); err != nil {
			slog.Warn("Failed to send confirmation email",
				slog.String("order_id", orderID),
				slog.String("error", err.Error()),
			)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.orderID = orderID
	w.step = models.StepConfirmation
	w.submitting = false
}

// Back returns from Payment to Shipping. No other backward transition
// exists; Confirmation in particular cannot be left except via Close.
func (w *CheckoutWorkflow) Back() models.CheckoutStep {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == models.StepPayment && !w.submitting {
		w.step = models.StepShipping
	}

	return w.step
}

// Close resets the workflow to Shipping with all fields, error flags and the
// recorded order identifier cleared. This is the only cancellation path.
// Returns false while a submission is in flight: once invoked, a submission
// runs to completion before the state can be discarded.
func (w *CheckoutWorkflow) Close() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submitting {
		return false
	}

	w.step = models.StepShipping
	w.form = models.CheckoutForm{}
	w.fieldErrs = models.FieldErrors{}
	w.snapshot = models.CartSnapshot{}
	w.orderID = ""

	return true
}

func (w *CheckoutWorkflow) Step() models.CheckoutStep {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.step
}

func (w *CheckoutWorkflow) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.submitting
}

func (w *CheckoutWorkflow) OrderID() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.orderID
}

func (w *CheckoutWorkflow) FieldErrors() models.FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()

	errs := models.FieldErrors{}
	for field, flagged := range w.fieldErrs {
		errs[field] = flagged
	}

	return errs
}

// State assembles the read model for the presentation layer. Payment data is
// deliberately absent.
func (w *CheckoutWorkflow) State() models.CheckoutState {
	w.mu.Lock()
	defer w.mu.Unlock()

	errs := models.FieldErrors{}
	for field, flagged := range w.fieldErrs {
		errs[field] = flagged
	}

	return models.CheckoutState{
		Step:       w.step,
		Submitting: w.submitting,
		OrderID:    w.orderID,
		Errors:     errs,
		Shipping:   w.form.Shipping,
		Summary:    w.snapshot,
	}
}

// ValidateShipping flags every shipping field that is empty after trimming.
// The email check is syntactic only: it must contain an "@".
func ValidateShipping(s models.ShippingInfo) models.FieldErrors {
	errs := models.FieldErrors{}

	if strings.TrimSpace(s.FullName) == "" {
		errs[models.FieldFullName] = true
	}

	if strings.TrimSpace(s.Email) == "" || !strings.Contains(s.Email, "@") {
		errs[models.FieldEmail] = true
	}

	if strings.TrimSpace(s.AddressLine) == "" {
		errs[models.FieldAddressLine] = true
	}

	if strings.TrimSpace(s.City) == "" {
		errs[models.FieldCity] = true
	}

	if strings.TrimSpace(s.PostalCode) == "" {
		errs[models.FieldPostalCode] = true
	}

	return errs
}

// ValidatePayment checks the card fields structurally. Nothing here talks to
// a payment processor.
func ValidatePayment(p models.PaymentInfo) models.FieldErrors {
	errs := models.FieldErrors{}

	digits := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, p.CardNumber)
	if strings.TrimSpace(p.CardNumber) == "" || len(digits) < minCardNumberLength {
		errs[models.FieldCardNumber] = true
	}

	if strings.TrimSpace(p.Expiry) == "" {
		errs[models.FieldExpiry] = true
	}

	if strings.TrimSpace(p.CVV) == "" || len(p.CVV) < 3 {
		errs[models.FieldCVV] = true
	}

	return errs
}
