package recruitment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCandidates(t *testing.T) {
	path := writeFixture(t, "candidates.json", `[
		{
			"name": "Ana Torres",
			"stack": ["Go", "SQL"],
			"experience_years": 4,
			"emotional_state": "Positive",
			"preferred_modality": "Remote",
			"zone": "North",
			"location": "Bogota, Colombia",
			"issue_count": 1
		}
	]`)

	candidates, err := LoadCandidates(path)
	require.NoError(t, err)
	require.Equal(t, 1, candidates.Len())

	ana := candidates.FindByName("Ana Torres")
	require.NotNil(t, ana)
	assert.Equal(t, []string{"Go", "SQL"}, ana.Stack)
	assert.Equal(t, EmotionPositive, ana.EmotionalState)
	assert.Equal(t, []string{"Ana Torres"}, candidates.Names())
}

func TestLoadCandidatesRejectsInvalidEmotion(t *testing.T) {
	path := writeFixture(t, "candidates.json", `[
		{"name": "Ana", "stack": ["Go"], "emotional_state": "Ecstatic"}
	]`)

	_, err := LoadCandidates(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ana")
}

func TestLoadCandidatesRejectsEmptyStack(t *testing.T) {
	path := writeFixture(t, "candidates.json", `[
		{"name": "Ana", "stack": [], "emotional_state": "Neutral"}
	]`)

	_, err := LoadCandidates(path)
	require.Error(t, err)
}

func TestLoadCandidatesMissingFile(t *testing.T) {
	_, err := LoadCandidates(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadVacanciesScalarLocation(t *testing.T) {
	path := writeFixture(t, "vacancies.yaml", `
- title: Backend Developer
  stack: [Go, SQL]
  modality: Remote
  zone: North
  urgency: high
  location: Bogota, Colombia
`)

	vacancies, err := LoadVacancies(path)
	require.NoError(t, err)
	require.Equal(t, 1, vacancies.Len())

	vacancy := vacancies.FindByTitle("Backend Developer")
	require.NotNil(t, vacancy)
	assert.Equal(t, Locations{"Bogota, Colombia"}, vacancy.Locations)
	assert.Equal(t, "Bogota, Colombia", vacancy.PrimaryLocation())
	assert.False(t, vacancy.IsGlobal())
}

func TestLoadVacanciesListLocation(t *testing.T) {
	path := writeFixture(t, "vacancies.yaml", `
- title: Data Engineer
  stack: [Python, SQL]
  zone: Global
  location:
    - Madrid, Spain
    - Bogota, Colombia
`)

	vacancies, err := LoadVacancies(path)
	require.NoError(t, err)

	vacancy := vacancies.FindByTitle("Data Engineer")
	require.NotNil(t, vacancy)
	assert.Equal(t, Locations{"Madrid, Spain", "Bogota, Colombia"}, vacancy.Locations)
	assert.Equal(t, "Madrid, Spain", vacancy.PrimaryLocation())
	assert.True(t, vacancy.IsGlobal())
}

func TestLoadVacanciesRejectsBadUrgency(t *testing.T) {
	path := writeFixture(t, "vacancies.yaml", `
- title: Backend Developer
  stack: [Go]
  urgency: urgent
`)

	_, err := LoadVacancies(path)
	require.Error(t, err)
}

func TestLoadRecruiters(t *testing.T) {
	path := writeFixture(t, "recruiters.json", `[
		{
			"id": "R001",
			"name": "Laura",
			"specialties": ["tech"],
			"regions": ["LATAM"],
			"active_profiles": 2,
			"location": "Bogota, Colombia"
		}
	]`)

	recruiters, err := LoadRecruiters(path)
	require.NoError(t, err)
	require.Equal(t, 1, recruiters.Len())

	laura := recruiters.FindByID("R001")
	require.NotNil(t, laura)
	assert.True(t, laura.HasSpecialty("Tech"))
	assert.True(t, laura.CoversRegion("latam"))
	assert.False(t, laura.IsRemote())
}

func TestLoadRecruitersRejectsNegativeWorkload(t *testing.T) {
	path := writeFixture(t, "recruiters.json", `[
		{"id": "R001", "name": "Laura", "active_profiles": -1}
	]`)

	_, err := LoadRecruiters(path)
	require.Error(t, err)
}

func TestLocationsUnmarshalJSON(t *testing.T) {
	var single Locations
	require.NoError(t, single.UnmarshalJSON([]byte(`"Lima, Peru"`)))
	assert.Equal(t, Locations{"Lima, Peru"}, single)

	var many Locations
	require.NoError(t, many.UnmarshalJSON([]byte(`["Lima, Peru", "Santiago, Chile"]`)))
	assert.Equal(t, Locations{"Lima, Peru", "Santiago, Chile"}, many)

	var bad Locations
	require.Error(t, bad.UnmarshalJSON([]byte(`42`)))
}

func TestRecruiterCloneIsIndependent(t *testing.T) {
	original := &Recruiter{
		ID:          "R001",
		Name:        "Laura",
		Specialties: []string{"tech"},
		Regions:     []string{"LATAM"},
	}

	clone := original.Clone()
	clone.Specialties[0] = "design"
	clone.Regions = append(clone.Regions, "EU")

	assert.Equal(t, []string{"tech"}, original.Specialties)
	assert.Equal(t, []string{"LATAM"}, original.Regions)
}

func TestUnassignedSentinel(t *testing.T) {
	sentinel := Unassigned()
	assert.True(t, sentinel.IsUnassigned())
	assert.Equal(t, UnassignedID, sentinel.ID)
	assert.NotEmpty(t, sentinel.Name)
}

func TestFinalRecordsByCandidate(t *testing.T) {
	records := &FinalRecords{}
	records.Append(
		&FinalRecord{Name: "Ana", Vacancy: "Backend Developer"},
		&FinalRecord{Name: "Jorge", Vacancy: "Backend Developer"},
		&FinalRecord{Name: "Ana", Vacancy: "Data Engineer"},
	)

	order, grouped := records.ByCandidate()
	assert.Equal(t, []string{"Ana", "Jorge"}, order)
	require.Len(t, grouped["Ana"], 2)
	assert.Equal(t, "Backend Developer", grouped["Ana"][0].Vacancy)
	assert.Equal(t, "Data Engineer", grouped["Ana"][1].Vacancy)
}
