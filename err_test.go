package asn1plus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChoiceError(t *testing.T) {
	_ = errorNoChoiceMatched("name")
}

func TestExpectError(t *testing.T) {
	_ = errorASN1Expect(1, 2, "Tag")
	_ = errorASN1Expect(1, 2, "Class")
	_ = errorASN1Expect(1, 2, "Length")
	_ = errorASN1Expect(true, false, "Compound")

	_ = errorASN1TagInClass(2, 1, 3, 4)
	_ = errorASN1ConstructedTagClass(
		TLV{Class: 2, Tag: 1, Compound: true, Length: 15},
		TLV{Class: 2, Tag: 1, Compound: false, Length: 15},
	)
}

func TestTypedErrors_DistinctKinds(t *testing.T) {
	var classErr *ClassError
	require.True(t, errors.As(errorASN1TagInClass(1, 2, 3, 4), &classErr))

	var choiceErr *ChoiceError
	require.True(t, errors.As(choiceErrorf("bad alternative"), &choiceErr))

	var constraintErr *ConstraintError
	require.True(t, errors.As(constraintViolationf("out of range"), &constraintErr))

	var enumErr *EnumeratedError
	require.True(t, errors.As(enumeratedErrorf("bad enumerated value"), &enumErr))

	var encErr *EncodingError
	require.True(t, errors.As(codecErrorf("truncated content"), &encErr))

	var niErr *NotImplementedError
	require.True(t, errors.Is(errorRuleNotImplemented, &NotImplementedError{}))
	require.True(t, errors.As(errorRuleNotImplemented, &niErr))

	cfgErr := configurationErrorf("Implicit and Explicit are mutually exclusive")
	var configErr *ConfigurationError
	require.True(t, errors.As(cfgErr, &configErr))

	modelErr := newModelValidationError("duplicate content name",
		errors.New("field 'name' declared twice"))
	require.Error(t, modelErr)
	var mErr *ModelValidationError
	require.True(t, errors.As(modelErr, &mErr))
	require.NotNil(t, errors.Unwrap(modelErr))

	// Distinct error kinds must not satisfy one another.
	require.False(t, errors.Is(classErr, &ChoiceError{}))
	require.False(t, errors.Is(choiceErr, &ConstraintError{}))
}
