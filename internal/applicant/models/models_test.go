package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "insurtech/pkg/domain-errors"
)

const mib = 1024 * 1024

func TestCheckAttachment(t *testing.T) {
	t.Run("3 MiB is rejected regardless of type", func(t *testing.T) {
		for _, mimeType := range append([]string{"text/plain"}, AllowedMIMETypes...) {
			err := CheckAttachment(3*mib, mimeType)
			require.NotNil(t, err, mimeType)
			assert.Equal(t, AttachmentReasonTooLarge, err.Reason)
			assert.Equal(t, MessageAttachmentTooLarge, err.Error())
		}
	})

	t.Run("1 MiB text/plain is rejected", func(t *testing.T) {
		err := CheckAttachment(1*mib, "text/plain")
		require.NotNil(t, err)
		assert.Equal(t, AttachmentReasonType, err.Reason)
		assert.Equal(t, MessageAttachmentType, err.Message)
	})

	t.Run("1 MiB image/png is accepted", func(t *testing.T) {
		assert.Nil(t, CheckAttachment(1*mib, MIMETypePNG))
	})

	t.Run("exactly 2 MiB is accepted", func(t *testing.T) {
		assert.Nil(t, Attachment{Size: MaxAttachmentSize, MIMEType: MIMETypePDF}.Validate())
	})

	t.Run("one byte over 2 MiB is rejected", func(t *testing.T) {
		assert.NotNil(t, Attachment{Size: MaxAttachmentSize + 1, MIMEType: MIMETypePDF}.Validate())
	})
}

func TestAttachmentIsImage(t *testing.T) {
	assert.True(t, Attachment{MIMEType: MIMETypeJPEG}.IsImage())
	assert.True(t, Attachment{MIMEType: MIMETypePNG}.IsImage())
	assert.False(t, Attachment{MIMEType: MIMETypePDF}.IsImage())
}

func TestPhaseTransitions(t *testing.T) {
	assert.True(t, PhasePersonalInfo.CanTransitionTo(PhaseDocumentInfo))
	assert.False(t, PhasePersonalInfo.CanTransitionTo(PhaseSubmitted))
	assert.True(t, PhaseDocumentInfo.CanTransitionTo(PhasePersonalInfo))
	assert.True(t, PhaseDocumentInfo.CanTransitionTo(PhaseSubmitted))
	assert.False(t, PhaseSubmitted.CanTransitionTo(PhasePersonalInfo))
	assert.False(t, PhaseSubmitted.CanTransitionTo(PhaseDocumentInfo))
	assert.True(t, PhaseSubmitted.IsTerminal())
	assert.False(t, PhaseDocumentInfo.IsTerminal())
}

func TestGenderIsValid(t *testing.T) {
	for _, g := range Genders {
		assert.True(t, g.IsValid())
	}
	assert.False(t, Gender("").IsValid())
	assert.False(t, Gender("Male").IsValid())
}

func TestParseTextField(t *testing.T) {
	for _, f := range TextFields {
		parsed, err := ParseTextField(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	_, err := ParseTextField(string(FieldCitizenshipFront))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestParseSlot(t *testing.T) {
	slot, err := ParseSlot("back")
	require.NoError(t, err)
	assert.Equal(t, SlotBack, slot)
	assert.Equal(t, FieldCitizenshipBack, slot.Field())
	assert.Equal(t, FieldCitizenshipFront, SlotFront.Field())

	_, err = ParseSlot("side")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestFieldSetTextAccessors(t *testing.T) {
	var fs FieldSet
	for _, f := range TextFields {
		fs = fs.WithText(f, "v-"+string(f))
	}
	for _, f := range TextFields {
		assert.Equal(t, "v-"+string(f), fs.Text(f))
	}
	assert.Equal(t, "", fs.Text(FieldCitizenshipFront))
}

func TestFieldSetWithAttachmentCopies(t *testing.T) {
	original := FieldSet{}
	front := &Attachment{Name: "front.png"}

	updated := original.WithAttachment(SlotFront, front)

	assert.Nil(t, original.CitizenshipFront)
	assert.Same(t, front, updated.Attachment(SlotFront))
	assert.Nil(t, updated.Attachment(SlotBack))
}
