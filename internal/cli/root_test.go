package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SebasPM15/landing-personal/internal/contactform"
	"github.com/SebasPM15/landing-personal/internal/leads"
)

type fakeAPI struct {
	baseURL string
	created []leads.Lead
	rows    []leads.Row
	err     error
}

func (f *fakeAPI) CreateLead(_ context.Context, lead leads.Lead) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, lead)
	return leads.ConfirmationMessage, nil
}

func (f *fakeAPI) ListLeads(context.Context) ([]leads.Row, error) {
	return f.rows, f.err
}

type fakeSheets struct {
	names []string
}

func (f fakeSheets) ListSheetNames(context.Context) ([]string, error) {
	return f.names, nil
}

func run(t *testing.T, api *fakeAPI, open func(context.Context) (SheetLister, error), args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand(Deps{
		Out:        &out,
		Err:        &errOut,
		APIBaseURL: "http://localhost:3500",
		NewAPI: func(baseURL string) LeadAPI {
			api.baseURL = baseURL
			return api
		},
		OpenSheets: open,
	})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestSubmit_PrintsConfirmation(t *testing.T) {
	api := &fakeAPI{}

	out, _, err := run(t, api, nil, "submit", "--name", "Ana Diaz", "--email", "ana@example.com")
	require.NoError(t, err)

	assert.Equal(t, leads.ConfirmationMessage+"\n", out)
	assert.Equal(t, []leads.Lead{{Name: "Ana Diaz", Email: "ana@example.com"}}, api.created)
	assert.Equal(t, "http://localhost:3500", api.baseURL)
}

func TestSubmit_ValidationErrorsMakeNoCall(t *testing.T) {
	api := &fakeAPI{}

	_, errOut, err := run(t, api, nil, "submit", "--email", "not-an-email")

	var verr *contactform.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, errOut, "name: Por favor ingresa tu nombre")
	assert.Contains(t, errOut, "email: Ingresa un correo electrónico válido")
	assert.Empty(t, api.created)
}

func TestSubmit_APIURLFlag(t *testing.T) {
	api := &fakeAPI{}

	_, _, err := run(t, api, nil, "--api-url", "http://api.internal", "submit", "--name", "Ana", "--email", "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal", api.baseURL)
}

func TestList_Table(t *testing.T) {
	api := &fakeAPI{rows: []leads.Row{{"Ana", "ana@x.com"}, {"Luis", "l@y.org", "099", "hola"}}}

	out, _, err := run(t, api, nil, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "l@y.org")
	assert.Contains(t, out, "hola")
}

func TestList_JSON(t *testing.T) {
	api := &fakeAPI{rows: []leads.Row{{"Ana", "ana@x.com"}}}

	out, _, err := run(t, api, nil, "list", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[["Ana","ana@x.com"]]`, out)
}

func TestList_PropagatesError(t *testing.T) {
	api := &fakeAPI{err: errors.New("Error al obtener los leads")}

	_, _, err := run(t, api, nil, "list")
	assert.EqualError(t, err, "Error al obtener los leads")
}

func TestSheets_PrintsNames(t *testing.T) {
	open := func(context.Context) (SheetLister, error) {
		return fakeSheets{names: []string{"LeadsDB", "Archive"}}, nil
	}

	out, _, err := run(t, &fakeAPI{}, open, "sheets")
	require.NoError(t, err)
	assert.Equal(t, "LeadsDB\nArchive\n", out)
}

func TestSheets_OpenError(t *testing.T) {
	open := func(context.Context) (SheetLister, error) {
		return nil, errors.New("config: missing google sheets settings")
	}

	_, _, err := run(t, &fakeAPI{}, open, "sheets")
	assert.Error(t, err)
}
