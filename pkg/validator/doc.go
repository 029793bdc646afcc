// Package validator builds declarative validation out of small Rule values.
//
// A Rule pairs a Check with the ValidationError reported when the check
// fails. Apply evaluates rules in order and returns every failure as
// ValidationErrors, which implements error:
//
//	err := validator.Apply(
//		validator.Required("email", req.Email),
//		validator.ValidEmail("email", req.Email),
//		validator.MinLen("password", req.Password, 8),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		page.ShareErrors(verrs.Messages())
//	}
//
// Each ValidationError carries a stable Key and Params so a client can
// translate the message instead of showing Message verbatim.
package validator
