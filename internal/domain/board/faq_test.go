package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_FAQs(t *testing.T) {
	for _, section := range FAQSections {
		require.NotEmpty(t, FAQs(section), section)
	}
}

func Test_Accordion(t *testing.T) {
	a := NewAccordion()
	require.Equal(t, FAQSectionGameplay, a.Section())
	require.False(t, a.IsOpen(0))

	a.Toggle(0)
	a.Toggle(2)
	require.True(t, a.IsOpen(0))
	require.True(t, a.IsOpen(2))

	a.Toggle(0)
	require.False(t, a.IsOpen(0))

	// Out of range is ignored.
	a.Toggle(99)
	require.False(t, a.IsOpen(99))

	a.SetSection(FAQSectionRewards)
	require.False(t, a.IsOpen(2))
	a.Toggle(1)
	require.True(t, a.IsOpen(1))

	a.SetSection(FAQSectionGameplay)
	require.False(t, a.IsOpen(1))
}
