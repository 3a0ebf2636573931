package kanban_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/recruitflow/internal/kanban"
	"github.com/desertthunder/recruitflow/internal/models"
	"github.com/desertthunder/recruitflow/internal/shared"
	tu "github.com/desertthunder/recruitflow/internal/testing"
)

func TestItemAdapter(t *testing.T) {
	t.Run("FromVacancy", func(t *testing.T) {
		v := &models.Vacancy{
			ID:          "1",
			Title:       "Middle Frontend Developer",
			CompanyID:   "1",
			CompanyName: "IT-Bilim",
			Salary:      &models.Salary{Amount: 8000000, Currency: "сум"},
			Skills:      []string{"HTML", "CSS"},
			Status:      models.StatusActive,
		}

		item := kanban.FromVacancy(v)

		assert.Equal(t, kanban.KindVacancy, item.Kind)
		assert.Equal(t, "Middle Frontend Developer", item.Title)
		assert.Equal(t, "IT-Bilim", item.Subtitle)
		assert.Equal(t, "Initial Review", item.Stage, "missing stage falls back to the first vacancy stage")
		assert.Equal(t, []string{"HTML", "CSS"}, item.Tags)
		require.NotNil(t, item.Salary)

		v.Salary.Amount = 1
		v.Skills[0] = "XML"
		assert.Equal(t, int64(8000000), item.Salary.Amount, "item must not alias the record")
		assert.Equal(t, "HTML", item.Tags[0])

		details, ok := item.Vacancy()
		require.True(t, ok)
		assert.Equal(t, "1", details.CompanyID)
		_, ok = item.Candidate()
		assert.False(t, ok)
	})

	t.Run("FromCandidate", func(t *testing.T) {
		c := &models.Candidate{
			ID:        "7",
			FirstName: "Мария",
			LastName:  "Сидорова",
			Position:  "Backend Developer",
			Skills:    []string{"Node.js"},
			Languages: []models.Language{{Language: "Английский", Level: "B1"}},
			Stage:     "Offer",
			VacancyID: "2",
		}

		item := kanban.FromCandidate(c)

		assert.Equal(t, kanban.KindCandidate, item.Kind)
		assert.Equal(t, "Мария Сидорова", item.Title)
		assert.Equal(t, "Backend Developer", item.Subtitle)
		assert.Equal(t, "Offer", item.Stage)
		assert.Nil(t, item.Salary)
		assert.Equal(t, "candidate:7", item.Key())

		details, ok := item.Candidate()
		require.True(t, ok)
		assert.Equal(t, "2", details.VacancyID)
		assert.Equal(t, kanban.KindCandidate, details.Kind())
	})

	t.Run("FromCandidates keeps order", func(t *testing.T) {
		items := kanban.FromCandidates([]*models.Candidate{
			{ID: "2", FirstName: "B", LastName: "B"},
			{ID: "1", FirstName: "A", LastName: "A"},
		})

		require.Len(t, items, 2)
		assert.Equal(t, "2", items[0].ID)
		assert.Equal(t, "Screening", items[1].Stage)
	})
}

func TestParseKind(t *testing.T) {
	tc := []struct {
		in   string
		want kanban.Kind
		err  bool
	}{
		{in: "vacancy", want: kanban.KindVacancy},
		{in: "Vacancies", want: kanban.KindVacancy},
		{in: " candidate ", want: kanban.KindCandidate},
		{in: "candidates", want: kanban.KindCandidate},
		{in: "company", err: true},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			got, err := kanban.ParseKind(tt.in)
			if tt.err {
				assert.ErrorIs(t, err, shared.ErrInvalidKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearch(t *testing.T) {
	items := tu.PipelineItems()

	assert.Equal(t, items, kanban.Search(items, "  "))

	got := kanban.Search(items, "grace")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got = kanban.Search(items, "react")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got = kanban.Search(items, "dev")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID, "matches keep board order")

	assert.Empty(t, kanban.Search(items, "zzzz"))
}
