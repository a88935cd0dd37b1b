package screens

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmctl/internal/crm"
	"crmctl/internal/session"
)

// fakeResource is an in-memory Resource with injectable failures.
type fakeResource struct {
	records []crm.Customer
	nextID  int64

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeResource) List(ctx context.Context) ([]crm.Customer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]crm.Customer, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeResource) Create(ctx context.Context, rec crm.Customer) (crm.Customer, error) {
	if f.createErr != nil {
		return crm.Customer{}, f.createErr
	}
	f.nextID++
	rec.ID = f.nextID
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeResource) Update(ctx context.Context, id int64, rec crm.Customer) (crm.Customer, error) {
	if f.updateErr != nil {
		return crm.Customer{}, f.updateErr
	}
	rec.ID = id
	for i, r := range f.records {
		if r.ID == id {
			f.records[i] = rec
		}
	}
	return rec, nil
}

func (f *fakeResource) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.records[:0]
	for _, r := range f.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

func adminSession() session.Session {
	return session.Session{Token: "t", Role: crm.RoleAdmin, FullName: "Ada Admin"}
}

func salesSession() session.Session {
	return session.Session{Token: "t", Role: crm.RoleSales, FullName: "Bob Lee"}
}

func customerScreen(res *fakeResource, sess session.Session) *ListScreen[crm.Customer] {
	return newListScreen[crm.Customer]("customers", res, sess,
		func(c crm.Customer) int64 { return c.ID })
}

func seededResource() *fakeResource {
	return &fakeResource{
		records: []crm.Customer{
			{ID: 1, Name: "Initech", Status: "Active"},
			{ID: 2, Name: "Globex", Status: "Active"},
		},
		nextID: 2,
	}
}

func TestLoadFailureClearsList(t *testing.T) {
	res := seededResource()
	screen := customerScreen(res, adminSession())
	require.NoError(t, screen.Load(context.Background()))
	require.Len(t, screen.Records(), 2)

	res.listErr = errors.New("network down")
	err := screen.Load(context.Background())
	require.Error(t, err)
	assert.Empty(t, screen.Records(), "a failed reload must not show stale records")
}

func TestSubmitCreateAppends(t *testing.T) {
	res := seededResource()
	screen := customerScreen(res, adminSession())
	require.NoError(t, screen.Load(context.Background()))

	created, err := screen.Submit(context.Background(),
		crm.Customer{Name: "Hooli", Status: "Active"}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Len(t, screen.Records(), 3)
}

func TestSubmitUpdateReplacesInPlace(t *testing.T) {
	res := seededResource()
	screen := customerScreen(res, adminSession())
	require.NoError(t, screen.Load(context.Background()))

	_, err := screen.Submit(context.Background(),
		crm.Customer{Name: "Globex Corp", Status: "Inactive"}, 2)
	require.NoError(t, err)

	require.Len(t, screen.Records(), 2)
	got, ok := screen.Find(2)
	require.True(t, ok)
	assert.Equal(t, "Globex Corp", got.Name)
	// Order preserved: the updated record stays in slot 2, not appended.
	assert.Equal(t, int64(1), screen.Records()[0].ID)
}

func TestSubmitWriteFailureLeavesListUntouched(t *testing.T) {
	res := seededResource()
	screen := customerScreen(res, adminSession())
	require.NoError(t, screen.Load(context.Background()))

	res.createErr = errors.New("boom")
	_, err := screen.Submit(context.Background(),
		crm.Customer{Name: "Hooli", Status: "Active"}, 0)
	require.Error(t, err)
	assert.Len(t, screen.Records(), 2)

	res.updateErr = errors.New("boom")
	_, err = screen.Submit(context.Background(),
		crm.Customer{Name: "Changed", Status: "Active"}, 1)
	require.Error(t, err)
	got, _ := screen.Find(1)
	assert.Equal(t, "Initech", got.Name)
}

func TestSubmitValidatesDraft(t *testing.T) {
	screen := customerScreen(seededResource(), adminSession())
	require.NoError(t, screen.Load(context.Background()))

	_, err := screen.Submit(context.Background(), crm.Customer{}, 0)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "status")
	assert.Len(t, screen.Records(), 2, "an invalid draft never reaches the server")
}

func TestSubmitForbiddenForSales(t *testing.T) {
	screen := customerScreen(seededResource(), salesSession())
	require.NoError(t, screen.Load(context.Background()))

	_, err := screen.Submit(context.Background(),
		crm.Customer{Name: "Hooli", Status: "Active"}, 0)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = screen.Submit(context.Background(),
		crm.Customer{Name: "Hooli", Status: "Active"}, 1)
	assert.ErrorIs(t, err, ErrForbidden)

	err = screen.Delete(context.Background(), 1, func() bool { return true })
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	res := seededResource()
	screen := customerScreen(res, adminSession())
	require.NoError(t, screen.Load(context.Background()))

	err := screen.Delete(context.Background(), 1, func() bool { return false })
	assert.ErrorIs(t, err, ErrAborted)
	assert.Len(t, screen.Records(), 2)
	assert.Len(t, res.records, 2, "a declined confirm never reaches the server")

	err = screen.Delete(context.Background(), 1, func() bool { return true })
	require.NoError(t, err)
	assert.Len(t, screen.Records(), 1)
	assert.Len(t, res.records, 1)
}

func TestDeleteFailureKeepsLocalEntry(t *testing.T) {
	res := seededResource()
	res.deleteErr = errors.New("boom")
	screen := customerScreen(res, adminSession())
	require.NoError(t, screen.Load(context.Background()))

	err := screen.Delete(context.Background(), 1, func() bool { return true })
	require.Error(t, err)
	assert.Len(t, screen.Records(), 2)
}

func TestDeleteUnsupportedByCollection(t *testing.T) {
	// Wrapping in the plain Resource interface hides Delete, the same
	// shape the deals collection has.
	res := struct {
		Resource[crm.Customer]
	}{seededResource()}
	screen := newListScreen[crm.Customer]("sales", res, adminSession(),
		func(c crm.Customer) int64 { return c.ID })
	require.NoError(t, screen.Load(context.Background()))

	err := screen.Delete(context.Background(), 1, func() bool { return true })
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAborted)
	assert.Len(t, screen.Records(), 2)
}

func TestFilteredIsLocal(t *testing.T) {
	res := seededResource()
	screen := customerScreen(res, adminSession())
	require.NoError(t, screen.Load(context.Background()))

	// Break the backend; filtering must still work on loaded state.
	res.listErr = errors.New("down")
	got := screen.Filtered(func(c crm.Customer) bool { return c.Name == "Globex" })
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}
