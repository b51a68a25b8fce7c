package departmentprovider

import (
	dictapimodels "ptw-backend/models/api/dict"
	dbmodels "ptw-backend/models/db"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	recs map[string]dbmodels.Department
}

func newFakeStore() *fakeStore {
	return &fakeStore{recs: map[string]dbmodels.Department{}}
}

func (f *fakeStore) Create(rec dbmodels.Department) error {
	f.recs[rec.Code] = rec
	return nil
}

func (f *fakeStore) GetByCode(code string) (*dbmodels.Department, error) {
	rec, ok := f.recs[code]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStore) Update(code string, updMap map[string]interface{}) error {
	rec := f.recs[code]
	rec.Name = updMap["name"].(string)
	f.recs[code] = rec
	return nil
}

func (f *fakeStore) Delete(code string) error {
	delete(f.recs, code)
	return nil
}

func (f *fakeStore) List() ([]dbmodels.Department, error) {
	list := []dbmodels.Department{}
	for _, rec := range f.recs {
		list = append(list, rec)
	}
	sort.Slice(list, func(a, b int) bool { return list[a].Name < list[b].Name })
	return list, nil
}

func TestDepartmentHandler(t *testing.T) {
	store := newFakeStore()
	h := NewHandlerWithStore(store)

	t.Run(`create normalizes code and refuses duplicates`, func(t *testing.T) {
		hMsg, err := h.Create(dictapimodels.DepartmentData{Code: " eng ", Name: "Engineering"})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Contains(t, store.recs, "ENG")

		hMsg, err = h.Create(dictapimodels.DepartmentData{Code: "ENG", Name: "Engineering 2"})
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`department map includes defaults`, func(t *testing.T) {
		depMap, err := h.DepartmentMap()
		require.Nil(t, err)
		require.Equal(t, "Asset Maintenance", depMap["ASM"])
		require.Equal(t, "Engineering", depMap["ENG"])
	})

	t.Run(`update keeps code`, func(t *testing.T) {
		hMsg, err := h.Update("ENG", dictapimodels.DepartmentData{Code: "OTHER", Name: "x"})
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)

		hMsg, err = h.Update("ENG", dictapimodels.DepartmentData{Code: "ENG", Name: "Engineering Dept"})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		item, err := h.Get("ENG")
		require.Nil(t, err)
		require.Equal(t, "Engineering Dept", item.Name)
	})

	t.Run(`built-in departments are kept`, func(t *testing.T) {
		hMsg, err := h.Delete("QHSSE")
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)

		hMsg, err = h.Delete("ENG")
		require.Nil(t, err)
		require.Empty(t, hMsg)
		item, err := h.Get("ENG")
		require.Nil(t, err)
		require.Nil(t, item)
	})
}
