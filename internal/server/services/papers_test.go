package services

import (
	"context"
	"testing"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) paper(t *testing.T, title string, backward ...string) models.Paper {
	t.Helper()
	p, err := f.svc.CreatePaper(context.Background(), models.PaperSpec{
		Title:                      title,
		Year:                       2024,
		Authors:                    []models.Author{{FirstName: "Grace", LastName: "Hopper"}},
		BackwardReferencedPaperIDs: backward,
	})
	require.NoError(t, err)
	return p
}

func TestCreateAndGetPaper(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p := f.paper(t, "Snowballing")
	assert.Equal(t, "0", p.ID)
	assert.Equal(t, []string{}, p.ForwardReferencedPaperIDs)

	got, err := f.svc.GetPaper(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = f.svc.CreatePaper(ctx, models.PaperSpec{Title: ""})
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)
	_, err = f.svc.GetPaper(ctx, "5")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdatePaper(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.paper(t, "Snowballing")

	got, err := f.svc.UpdatePaper(ctx, p.ID, models.PaperPatch{Abstract: ptr("About citations."), Title: ptr("ignored")}, mask("abstract"))
	require.NoError(t, err)
	assert.Equal(t, "About citations.", got.Abstract)
	assert.Equal(t, "Snowballing", got.Title)

	_, err = f.svc.UpdatePaper(ctx, p.ID, models.PaperPatch{Title: ptr(" ")}, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)
}

func TestReferencedPapers_SkipUnknown(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cited := f.paper(t, "Cited")
	citing := f.paper(t, "Citing", cited.ID, "404")

	refs, err := f.svc.GetBackwardReferencedPapers(ctx, citing.ID)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, cited.ID, refs[0].ID)

	refs, err = f.svc.GetForwardReferencedPapers(ctx, citing.ID)
	require.NoError(t, err)
	assert.Empty(t, refs)

	_, err = f.svc.GetForwardReferencedPapers(ctx, "404")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPaperPdf(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.paper(t, "Snowballing")

	_, err := f.svc.GetPaperPdf(ctx, p.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, f.svc.SetPaperPdf(ctx, p.ID, []byte("%PDF")))
	data, err := f.svc.GetPaperPdf(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)

	assert.ErrorIs(t, f.svc.SetPaperPdf(ctx, "9", []byte("%PDF")), common.ErrorNotFound)
	assert.ErrorIs(t, f.svc.SetPaperPdf(ctx, p.ID, nil), common.ErrorInvalidArgument)
}

func TestReadingList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user, _ := f.register(t, "ada@example.com")
	p := f.paper(t, "Snowballing")

	assert.ErrorIs(t, f.svc.AddPaperToReadingList(ctx, user, "9"), common.ErrorNotFound)

	require.NoError(t, f.svc.AddPaperToReadingList(ctx, user, p.ID))
	require.NoError(t, f.svc.AddPaperToReadingList(ctx, user, p.ID))

	list, err := f.svc.GetReadingList(ctx, user)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	on, err := f.svc.IsPaperOnReadingList(ctx, user, p.ID)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, f.svc.RemovePaperFromReadingList(ctx, user, p.ID))
	require.NoError(t, f.svc.RemovePaperFromReadingList(ctx, user, p.ID))
	on, err = f.svc.IsPaperOnReadingList(ctx, user, p.ID)
	require.NoError(t, err)
	assert.False(t, on)

	_, err = f.svc.GetReadingList(ctx, "9")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada, _ := f.register(t, "ada@example.com")
	f.register(t, "bob@example.com")

	_, err := f.svc.UpdateUser(ctx, ada, models.UserPatch{Email: ptr("bob@example.com")}, nil)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	got, err := f.svc.UpdateUser(ctx, ada, models.UserPatch{ID: ptr("7"), FirstName: ptr("Augusta")}, nil)
	require.NoError(t, err)
	assert.Equal(t, ada, got.ID)
	assert.Equal(t, "Augusta", got.FirstName)

	byEmail, err := f.svc.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, got, byEmail)

	_, err = f.svc.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUserSettings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ada, _ := f.register(t, "ada@example.com")

	got, err := f.svc.UpdateUserSettings(ctx, ada, models.UserSettingsPatch{ShowHotkeys: ptr(false)}, mask("show_hotkeys"))
	require.NoError(t, err)
	assert.False(t, got.ShowHotkeys)

	_, err = f.svc.UpdateUserSettings(ctx, ada, models.UserSettingsPatch{}, mask("show_hotkeys"))
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)

	_, err = f.svc.GetUserSettings(ctx, "9")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
