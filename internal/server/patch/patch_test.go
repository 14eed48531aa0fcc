package patch

import (
	"testing"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

func ptr[T any](v T) *T { return &v }

func sampleProject() models.Project {
	return models.Project{
		ID:           "3",
		Name:         "Mapping study",
		Status:       models.ProjectStatusActive,
		CurrentStage: 1,
		MaxStage:     2,
		Settings:     models.DefaultProjectSettings(),
	}
}

func mask(paths ...string) *fieldmaskpb.FieldMask {
	return &fieldmaskpb.FieldMask{Paths: paths}
}

func TestApply_NoMaskAppliesPresentFields(t *testing.T) {
	cur := sampleProject()

	got, err := Apply(cur, models.ProjectPatch{Name: ptr("Renamed"), MaxStage: ptr(int64(5))}, nil)
	require.NoError(t, err)

	want := cur
	want.Name = "Renamed"
	want.MaxStage = 5
	assert.Empty(t, cmp.Diff(want, got))
}

func TestApply_MaskSelectsOnlyNamedPaths(t *testing.T) {
	cur := sampleProject()
	p := models.ProjectPatch{Name: ptr("Ignored"), CurrentStage: ptr(int64(2))}

	got, err := Apply(cur, p, mask("currentStage"))
	require.NoError(t, err)

	assert.Equal(t, "Mapping study", got.Name)
	assert.Equal(t, int64(2), got.CurrentStage)
}

func TestApply_NestedPath(t *testing.T) {
	cur := sampleProject()
	p := models.ProjectPatch{Settings: &models.ProjectSettingsPatch{SimilarityThreshold: ptr(0.5)}}

	got, err := Apply(cur, p, mask("settings.similarity_threshold"))
	require.NoError(t, err)

	assert.InDelta(t, 0.5, got.Settings.SimilarityThreshold, 1e-9)
	assert.Equal(t, cur.Settings.DecisionMatrix, got.Settings.DecisionMatrix)
	assert.Equal(t, cur.Settings.SnowballingType, got.Settings.SnowballingType)
}

func TestApply_PartialNestedObjectFails(t *testing.T) {
	cur := sampleProject()
	p := models.ProjectPatch{Settings: &models.ProjectSettingsPatch{SnowballingType: ptr(models.SnowballingBackward)}}

	for name, m := range map[string]*fieldmaskpb.FieldMask{
		"no mask":     nil,
		"object mask": mask("settings"),
	} {
		t.Run(name, func(t *testing.T) {
			got, err := Apply(cur, p, m)
			require.ErrorIs(t, err, common.ErrorInvalidArgument)

			var invalid *common.InvalidArgumentError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, "settings.similarityThreshold", invalid.Field)
			assert.Empty(t, cmp.Diff(cur, got))
		})
	}
}

func TestApply_CompleteNestedObjectIsApplied(t *testing.T) {
	cur := sampleProject()
	st := cur.Settings
	p := models.ProjectPatch{Settings: &models.ProjectSettingsPatch{
		SimilarityThreshold: ptr(0.25),
		FetcherAPIs:         ptr([]string{"mock"}),
		SnowballingType:     ptr(models.SnowballingBackward),
		ReviewMaybeAllowed:  ptr(!st.ReviewMaybeAllowed),
		DecisionMatrix:      &st.DecisionMatrix,
	}}

	got, err := Apply(cur, p, mask("settings"))
	require.NoError(t, err)

	want := cur
	want.Settings.SimilarityThreshold = 0.25
	want.Settings.FetcherAPIs = []string{"mock"}
	want.Settings.SnowballingType = models.SnowballingBackward
	want.Settings.ReviewMaybeAllowed = !st.ReviewMaybeAllowed
	assert.Empty(t, cmp.Diff(want, got))
}

func TestApply_IDIsNeverChanged(t *testing.T) {
	cur := sampleProject()
	p := models.ProjectPatch{ID: ptr("99"), Name: ptr("X")}

	got, err := Apply(cur, p, nil)
	require.NoError(t, err)
	assert.Equal(t, "3", got.ID)

	got, err = Apply(cur, p, mask("id", "name"))
	require.NoError(t, err)
	assert.Equal(t, "3", got.ID)
	assert.Equal(t, "X", got.Name)
}

func TestApply_MissingMaskedValueFails(t *testing.T) {
	cur := sampleProject()

	got, err := Apply(cur, models.ProjectPatch{Name: ptr("X")}, mask("name", "maxStage"))
	require.ErrorIs(t, err, common.ErrorInvalidArgument)
	assert.Empty(t, cmp.Diff(cur, got))
}

func TestApply_UnknownPathFails(t *testing.T) {
	cur := models.Criterion{ID: "1", Tag: "E1"}

	_, err := Apply(cur, models.CriterionPatch{Tag: ptr("E2")}, mask("colour"))
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)
}

func TestApply_MalformedPathFails(t *testing.T) {
	cur := models.Criterion{ID: "1"}

	for _, p := range []string{"", "tag.", "authors.#", "a|b", "0"} {
		_, err := Apply(cur, models.CriterionPatch{Tag: ptr("E2")}, mask(p))
		assert.ErrorIs(t, err, common.ErrorInvalidArgument, "path %q", p)
	}
}

func TestApply_Idempotent(t *testing.T) {
	cur := models.Paper{ID: "4", Title: "A", Year: 2001, Authors: []models.Author{{FirstName: "Ada", LastName: "L"}}}
	p := models.PaperPatch{
		Title:   ptr("B"),
		Authors: &[]models.Author{{FirstName: "Grace", LastName: "H"}},
	}

	once, err := Apply(cur, p, mask("title", "authors"))
	require.NoError(t, err)
	twice, err := Apply(once, p, mask("title", "authors"))
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(once, twice))
	assert.Equal(t, "Grace", twice.Authors[0].FirstName)
	assert.Equal(t, int64(2001), twice.Year)
}

func TestApply_EmptySliceIsAValue(t *testing.T) {
	cur := models.Review{ID: "0", SelectedCriteriaIDs: []string{"1", "2"}}

	got, err := Apply(cur, models.ReviewPatch{SelectedCriteriaIDs: &[]string{}}, mask("selectedCriteriaIds"))
	require.NoError(t, err)
	assert.Empty(t, got.SelectedCriteriaIDs)
}

func TestApply_EmptyPatchIsNoop(t *testing.T) {
	cur := models.UserSettings{ShowHotkeys: true}

	got, err := Apply(cur, models.UserSettingsPatch{}, nil)
	require.NoError(t, err)
	assert.Equal(t, cur, got)
}

func TestPaths(t *testing.T) {
	paths, err := Paths([]byte(`{"id":"1","first_name":"x","lastName":"y"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"firstName", "lastName"}, paths)

	paths, err = Paths(nil, mask("settings.decision_matrix", "settings.decisionMatrix", "id"))
	require.NoError(t, err)
	assert.Equal(t, []string{"settings.decisionMatrix"}, paths)
}

func TestLowerCamel(t *testing.T) {
	assert.Equal(t, "maxStage", lowerCamel("max_stage"))
	assert.Equal(t, "maxStage", lowerCamel("maxStage"))
	assert.Equal(t, "id", lowerCamel("_id"))
	assert.Equal(t, "backwardReferencedPaperIds", lowerCamel("backward_referenced_paper_ids"))
}
