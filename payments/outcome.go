package payments

// ResultCode is the provider's outcome vocabulary for payments and details calls.
type ResultCode string

const (
	Authorised       ResultCode = "Authorised"
	Received         ResultCode = "Received"
	Pending          ResultCode = "Pending"
	Refused          ResultCode = "Refused"
	Error            ResultCode = "Error"
	Cancelled        ResultCode = "Cancelled"
	RedirectShopper  ResultCode = "RedirectShopper"
	IdentifyShopper  ResultCode = "IdentifyShopper"
	ChallengeShopper ResultCode = "ChallengeShopper"
	PresentToShopper ResultCode = "PresentToShopper"
)

// Target is one of the terminal checkout views.
type Target string

const (
	TargetSuccess Target = "success"
	TargetPending Target = "pending"
	TargetFailed  Target = "failed"
	TargetError   Target = "error"
)

// Path returns the URL path of the view.
func (t Target) Path() string {
	return "/" + string(t)
}

// RoutePayment maps the result of a Drop-in payment or details call to its
// terminal view. Anything that is not a success or still in flight is a failure.
func RoutePayment(code ResultCode) Target {
	switch code {
	case Authorised:
		return TargetSuccess
	case Received, Pending:
		return TargetPending
	default:
		return TargetFailed
	}
}

// RouteRedirect maps the result of a details call made after a shopper
// redirect. Unlike RoutePayment, only Refused is a failure; any other
// unexpected code lands on the error view.
func RouteRedirect(code ResultCode) Target {
	switch code {
	case Authorised:
		return TargetSuccess
	case Pending:
		return TargetPending
	case Refused:
		return TargetFailed
	default:
		return TargetError
	}
}
