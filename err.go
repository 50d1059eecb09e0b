package asn1plus

/*
err.go contains error constructors and literals used frequently.
throughout this package.
*/

import (
	"sync"

	multierror "github.com/hashicorp/go-multierror"
)

var errCache sync.Map

/*
EncodingError indicates a failure within the TLV codec itself --
identifier/length/content framing, or a SEQUENCE/SET/CHOICE marshal
or unmarshal routine built atop it. Use [errors.As] to recover one
from a wrapped error chain.
*/
type EncodingError struct{ msg string }

func (e *EncodingError) Error() string { return e.msg }
func (e *EncodingError) Is(target error) bool {
	_, ok := target.(*EncodingError)
	return ok
}

/*
ClassError indicates that a decoded identifier's class and/or tag did
not match what the schema expected.
*/
type ClassError struct{ msg string }

func (e *ClassError) Error() string { return e.msg }
func (e *ClassError) Is(target error) bool {
	_, ok := target.(*ClassError)
	return ok
}

/*
EnumeratedError indicates a failure specific to construction or
validation of an [Enumerated] value.
*/
type EnumeratedError struct{ msg string }

func (e *EnumeratedError) Error() string { return e.msg }
func (e *EnumeratedError) Is(target error) bool {
	_, ok := target.(*EnumeratedError)
	return ok
}

/*
ChoiceError indicates a failure to register, resolve or match a
CHOICE alternative.
*/
type ChoiceError struct{ msg string }

func (e *ChoiceError) Error() string { return e.msg }
func (e *ChoiceError) Is(target error) bool {
	_, ok := target.(*ChoiceError)
	return ok
}

/*
ConstraintError indicates that a [Constraint] or [ConstraintGroup]
rejected a candidate value.
*/
type ConstraintError struct{ msg string }

func (e *ConstraintError) Error() string { return e.msg }
func (e *ConstraintError) Is(target error) bool {
	_, ok := target.(*ConstraintError)
	return ok
}

/*
ModelValidationError indicates that a [Model] declaration failed its
structural checks (e.g. duplicate content names). When more than one
violation is found, every violation is aggregated via
[github.com/hashicorp/go-multierror] rather than reporting only the
first; [errors.Unwrap] yields the aggregate.
*/
type ModelValidationError struct {
	msg  string
	errs *multierror.Error
}

func (e *ModelValidationError) Error() string {
	if e.errs != nil && e.errs.Len() > 0 {
		return e.msg + ": " + e.errs.Error()
	}
	return e.msg
}

func (e *ModelValidationError) Is(target error) bool {
	_, ok := target.(*ModelValidationError)
	return ok
}

func (e *ModelValidationError) Unwrap() error {
	if e.errs == nil {
		return nil
	}
	return e.errs.ErrorOrNil()
}

/*
ConfigurationError indicates that an [Options] construction was
self-contradictory (e.g. both Implicit and Explicit set at once).
*/
type ConfigurationError struct{ msg string }

func (e *ConfigurationError) Error() string { return e.msg }
func (e *ConfigurationError) Is(target error) bool {
	_, ok := target.(*ConfigurationError)
	return ok
}

/*
NotImplementedError indicates a request for behavior this package
deliberately does not implement (e.g. CER, indefinite-length BER).
*/
type NotImplementedError struct{ msg string }

func (e *NotImplementedError) Error() string { return e.msg }
func (e *NotImplementedError) Is(target error) bool {
	_, ok := target.(*NotImplementedError)
	return ok
}

var (
	encodingErrCache      sync.Map
	classErrCache         sync.Map
	enumeratedErrCache    sync.Map
	choiceErrTypeCache    sync.Map
	constraintErrCache    sync.Map
	configurationErrCache sync.Map
	notImplementedCache   sync.Map
)

func joinParts(parts ...any) string {
	b := newStrBuilder()
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case int:
			b.WriteString(itoa(v))
		default:
			b.WriteString("<not supported>")
		}
	}
	return b.String()
}

/*
encodingErrorf builds (or returns a cached) [*EncodingError] from parts.
*/
func encodingErrorf(parts ...any) error {
	msg := joinParts(parts...)
	if v, hit := encodingErrCache.Load(msg); hit {
		return v.(error)
	}
	e := &EncodingError{msg: msg}
	encodingErrCache.Store(msg, error(e))
	return e
}

/*
classErrorf builds (or returns a cached) [*ClassError] from parts.
*/
func classErrorf(parts ...any) error {
	msg := joinParts(parts...)
	if v, hit := classErrCache.Load(msg); hit {
		return v.(error)
	}
	e := &ClassError{msg: msg}
	classErrCache.Store(msg, error(e))
	return e
}

/*
enumeratedErrorf builds (or returns a cached) [*EnumeratedError] from parts.
*/
func enumeratedErrorf(parts ...any) error {
	msg := joinParts(parts...)
	if v, hit := enumeratedErrCache.Load(msg); hit {
		return v.(error)
	}
	e := &EnumeratedError{msg: msg}
	enumeratedErrCache.Store(msg, error(e))
	return e
}

/*
configurationErrorf builds (or returns a cached) [*ConfigurationError]
from parts.
*/
func configurationErrorf(parts ...any) error {
	msg := joinParts(parts...)
	if v, hit := configurationErrCache.Load(msg); hit {
		return v.(error)
	}
	e := &ConfigurationError{msg: msg}
	configurationErrCache.Store(msg, error(e))
	return e
}

/*
notImplementedErrorf builds (or returns a cached) [*NotImplementedError]
from parts.
*/
func notImplementedErrorf(parts ...any) error {
	msg := joinParts(parts...)
	if v, hit := notImplementedCache.Load(msg); hit {
		return v.(error)
	}
	e := &NotImplementedError{msg: msg}
	notImplementedCache.Store(msg, error(e))
	return e
}

/*
newModelValidationError aggregates every violation in errs (via
[github.com/hashicorp/go-multierror]) into a single [*ModelValidationError].
Returns nil if errs is empty.
*/
func newModelValidationError(msg string, errs ...error) error {
	if len(errs) == 0 {
		return nil
	}
	agg := &multierror.Error{}
	for _, e := range errs {
		agg = multierror.Append(agg, e)
	}
	return &ModelValidationError{msg: msg, errs: agg}
}

/*
modelValidationErrorf builds a standalone [*ModelValidationError] (no
aggregated sub-violations) from msg, for checks that fail outright
rather than accumulate.
*/
func modelValidationErrorf(msg string) error {
	return &ModelValidationError{msg: msg}
}

/*
mkerr returns a cached error instance for msg, minting a new one on
first use. Errors of this package are compared by identity where
convenient (e.g. errors.Is against the sentinels below).
*/
func mkerr(msg string) error {
	if v, hit := errCache.Load(msg); hit {
		return v.(error)
	}
	e := simpleError(msg)
	errCache.Store(msg, e)
	return e
}

type simpleError string

func (e simpleError) Error() string { return string(e) }

var (
	errorAmbiguousChoice        error = mkerr("ambiguous alternative: multiple registered alternatives match the instance")
	errorNoChoicesAvailable     error = mkerr("no CHOICE alternatives available")
	errorNoChoiceForType        error = mkerr("no matching alternative found for input type")
	errorChosenNotSet           error = mkerr("CHOICE: no alternative has been chosen")
	errorNoMatchingAlternative  error = mkerr("CHOICE: no alternative matches the candidate value")
	errorNilInput               error = mkerr("nil input instance")
	errorNilReceiver            error = mkerr("nil receiver instance")
	errorNilValue                error = mkerr("nil value encountered")
	errorNoPrimitiveRead        error = mkerr("type does not implement read method")
	errorNoCompoundChoices      error = mkerr("no compound CHOICE alternatives available")
	errorNoCompoundChoiceMatch  error = mkerr("no compound CHOICE alternatives matched the data")
	errorEmptyASN1Parameters    error = mkerr("ASN.1 parameters missing or truncated")
	errorEmptyIdentifier        error = mkerr("empty identifier")
	errorTagTooLarge            error = mkerr("tag too large (>= 2^28)")
	errorTruncatedTag           error = mkerr("truncated high-tag-number form")
	errorOutOfBounds            error = mkerr("content and offset out of bounds")
	errorIndefiniteProhibited   error = notImplementedErrorf("indefinite lengths not supported by encoding rule")
	errorInvalidPacket          error = mkerr("invalid Packet instance")
	errorEmptyLength            error = mkerr("length bytes not found")
	errorTruncatedContent       error = mkerr("packet content is truncated")
	errorTruncatedLength        error = mkerr("packet length is truncated")
	errorLengthTooLarge         error = mkerr("length bytes too large (>4 octets)")
	errorRuleNotImplemented     error = notImplementedErrorf("encoding rule not implemented")
	errorNoEncodingRules        error = mkerr("no encoding rules enabled")
	errorAbsentNotNilPtr        error = mkerr("OPTIONAL/DEFAULT field absent but pointer is non-nil")
	errorComponentsNotAnonymous error = mkerr("COMPONENTS OF may only reference an anonymous embedded field")
	errorExtensionNotFieldZero  error = mkerr("extension marker must be the final declared field")
	errorSeqEmptyNonOptField    error = mkerr("SEQUENCE: mandatory field is empty")
	errorNegativeInteger        error = mkerr("Integer: negative value disallowed by Unsigned constraint")
)

/*
primitiveErrorf builds a [*EncodingError], used by primitive-type
constructors and constraint checks to avoid the overhead of fmt.Errorf
on hot paths.
*/
func primitiveErrorf(parts ...any) error { return encodingErrorf(parts...) }

/*
compositeErrorf builds a [*EncodingError], used by SEQUENCE and SET
marshal/unmarshal routines.
*/
func compositeErrorf(parts ...any) error { return encodingErrorf(parts...) }

/*
codecErrorf builds a [*EncodingError], used by the top-level
Marshal/Unmarshal dispatch routines.
*/
func codecErrorf(parts ...any) error { return encodingErrorf(parts...) }

/*
choiceErrorf builds a [*ChoiceError], used by CHOICE resolution
routines.
*/
func choiceErrorf(parts ...any) error {
	msg := joinParts(parts...)
	if v, hit := choiceErrTypeCache.Load(msg); hit {
		return v.(error)
	}
	e := &ChoiceError{msg: msg}
	choiceErrTypeCache.Store(msg, error(e))
	return e
}

/*
generalErrorf concatenates parts into a single cached error for
miscellaneous internal assertion failures that do not belong to any
of the named error kinds.
*/
func generalErrorf(parts ...any) error { return mkerrf(parts...) }

/*
constraintViolationf builds a [*ConstraintError], used by [Constraint]
and [ConstraintGroup] evaluation failures. The message is prefixed with
"CONSTRAINT VIOLATION: ".
*/
func constraintViolationf(parts ...any) error {
	msg := "CONSTRAINT VIOLATION: " + joinParts(parts...)
	if v, hit := constraintErrCache.Load(msg); hit {
		return v.(error)
	}
	e := &ConstraintError{msg: msg}
	constraintErrCache.Store(msg, error(e))
	return e
}

/*
errorBadTypeForConstructor reports that x cannot be used to construct
the named ASN.1 type.
*/
func errorBadTypeForConstructor(typ string, x any) error {
	return mkerrf(typ, ": cannot construct from type ", typeNameOf(x))
}

/*
errorPrimitiveAssertionFailed reports that x does not satisfy the
[Primitive] interface, nor any recognized fallback type.
*/
func errorPrimitiveAssertionFailed(x any) error {
	return mkerrf("value does not qualify as an ASN.1 primitive: ", typeNameOf(x))
}

/*
errorUnknownConstraint reports that name does not refer to any
registered [Constraint] or [ConstraintGroup].
*/
func errorUnknownConstraint(name string) error {
	return mkerrf("unknown constraint reference: ", name)
}

func errorNoChoiceMatched(name string) (err error) {
	return mkerrf(errorNoChoiceForType.Error() + " " + name)
}

func errorASN1Expect(a, b any, typ string) (err error) {
	switch typ {
	case "Tag":
		i, j := a.(int), b.(int)
		err = classErrorf("Expect" + typ + ": wrong tag: got " + itoa(j) + " (" +
			TagNames[j] + "), want " + itoa(i) + " (" + TagNames[i] + ")")
	case "Class":
		i, j := a.(int), b.(int)
		err = classErrorf("Expect" + typ + ": wrong class: got " + itoa(j) + " (" +
			ClassNames[j] + "), want " + itoa(i) + " (" + ClassNames[i] + ")")
	case "Length":
		i, j := a.(int), b.(int)
		err = encodingErrorf("Expect" + typ + ": wrong length: got " + itoa(j) + ", want " + itoa(i))
	case "Compound":
		i, j := a.(bool), b.(bool)
		err = classErrorf("Expect" + typ + ": wrong compound: got " + bool2str(j) + " (" +
			CompoundNames[j] + "), want " + bool2str(i) + " (" + CompoundNames[i] + ")")
	}

	return
}

func errorASN1TagInClass(expectClass, expectTag, class, tag int) (err error) {
	if class != expectClass || tag != expectTag {
		err = classErrorf("expected tag " + TagNames[expectTag] + " in class " +
			ClassNames[expectClass] + ", got tag " + itoa(tag) +
			" in class " + itoa(class))
	}

	return
}

func errorASN1ConstructedTagClass(wantTLV, gotTLV TLV) error {
	return classErrorf("Constructed: expected compound element with class " + itoa(wantTLV.Class) +
		" and tag " + itoa(wantTLV.Tag) + ", got class " + itoa(gotTLV.Class) + " and tag " + itoa(gotTLV.Tag) +
		", compound:" + bool2str(gotTLV.Compound))
}

func mkerrf(parts ...any) error {
	if len(parts) == 1 {
		if s, ok := parts[0].(string); ok {
			if v, hit := errCache.Load(s); hit {
				return v.(error)
			}
		}
	}

	b := newStrBuilder()
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case int:
			b.WriteString(itoa(v))
		default:
			b.WriteString("<not supported>")
		}
	}
	msg := b.String()

	if v, hit := errCache.Load(msg); hit {
		return v.(error)
	}
	e := mkerr(msg)
	errCache.Store(msg, e)
	return e
}
