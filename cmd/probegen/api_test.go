package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProject = `<project>
  <fixture name="vice" system="54"/>
  <tools>
    <tool number="7" type="touch-probe" offset="60"/>
  </tools>
  <probing>
    <centre title="bore centre" tool="7"><points>2</points></centre>
    <edge/>
  </probing>
</project>`

func newTestAPI() *api {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return newAPI(log)
}

func TestAPI_Generate(t *testing.T) {
	srv := httptest.NewServer(newTestAPI())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/generate", "application/xml", strings.NewReader(testProject))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var progs []generatedProgram
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&progs))
	require.Len(t, progs, 2)

	assert.Equal(t, "bore_centre.ngc", progs[0].Name)
	assert.Contains(t, progs[0].Program, "G38.2")
	assert.Contains(t, progs[0].Program, "#1001=#5061")
	assert.Equal(t, "probe_edge.ngc", progs[1].Name)
	assert.Contains(t, progs[1].Program, "#<corner_x>")
}

func TestAPI_GenerateRejectsInvalid(t *testing.T) {
	srv := httptest.NewServer(newTestAPI())
	defer srv.Close()

	body := `<project><probing><centre><points>3</points></centre></probing></project>`
	resp, err := http.Post(srv.URL+"/api/generate", "application/xml", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_Validate(t *testing.T) {
	srv := httptest.NewServer(newTestAPI())
	defer srv.Close()

	body := `<project><probing><centre><points>3</points></centre><edge/></probing></project>`
	resp, err := http.Post(srv.URL+"/api/validate", "application/xml", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res validation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "point count")
}

func TestReadProjectRejectsBadFixture(t *testing.T) {
	body := `<project><fixture system="7"/></project>`
	_, err := ReadProject(strings.NewReader(body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coordinate system")
}

func TestReadProject(t *testing.T) {
	p, err := ReadProject(strings.NewReader(testProject))
	require.NoError(t, err)

	assert.Equal(t, "vice", p.Fixture.Name)
	require.Len(t, p.Probing.Ops, 2)

	table := p.ToolTable()
	tool, ok := table.Find(7)
	require.True(t, ok)
	assert.Equal(t, 60.0, tool.LengthOffset)
}
