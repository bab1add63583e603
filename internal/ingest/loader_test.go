package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportHeader = `"Date","Session Payscale Custom Channels","Session source / medium","Page path and screen class","Total users","Engagement rate","Key events","User key event rate"`

func writeExport(t *testing.T, dataRows []string) string {
	t.Helper()
	lines := []string{
		"# ----------------------------------------",
		"# GA4 export",
		"# Property: example.com",
		"# Landing page report",
		"# 20240101-20240114",
		"# ----------------------------------------",
		exportHeader,
		`"","","","",9999,"55%",100,"0.05"`, // grand total
	}
	lines = append(lines, dataRows...)
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeExport(t, []string{
		`20240101,"Organic Search","google / organic","/home",100,"60%",5,"0.05"`,
		`20240102,"Direct","(direct) / (none)","/home",50,"40%",1,"0.02"`,
		`not-a-date,"Direct","(direct) / (none)","/home",10,"40%",0,"0"`,
	})

	res, err := LoadCSV(path, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)
	assert.Equal(t, 1, res.Rejected)
	assert.Equal(t, "Organic Search", res.Records[0].Channel)
	assert.Equal(t, 100, res.Records[0].Users)
	assert.InDelta(t, 0.6, res.Records[0].EngagementRate, 1e-9)
}

func TestLoadCSVSkipsGrandTotal(t *testing.T) {
	path := writeExport(t, []string{
		`20240101,"Direct","(direct) / (none)","/home",50,"40%",1,"0.02"`,
	})
	res, err := LoadCSV(path, DefaultOptions())
	require.NoError(t, err)
	// The 9999-user grand-total row must not leak into the data.
	require.Len(t, res.Records, 1)
	assert.Equal(t, 50, res.Records[0].Users)
}

func TestLoadCSVMissingColumnIsFatal(t *testing.T) {
	lines := []string{
		"#", "#", "#", "#", "#", "#",
		`"Date","Total users"`,
		`"",9999`,
		`20240101,100`,
	}
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))

	_, err := LoadCSV(path, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required column")
}

func TestLoadCSVNoValidRowsIsFatal(t *testing.T) {
	path := writeExport(t, []string{
		`bogus,"Direct","(direct) / (none)","/home",50,"40%",1,"0.02"`,
		`also-bogus,"Direct","(direct) / (none)","/home",50,"40%",1,"0.02"`,
	})
	_, err := LoadCSV(path, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid data rows")
}

func TestLoadCSVBlankRowsIgnored(t *testing.T) {
	path := writeExport(t, []string{
		`20240101,"Direct","(direct) / (none)","/home",50,"40%",1,"0.02"`,
		`,,,,,,,`,
	})
	res, err := LoadCSV(path, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, res.Records, 1)
	assert.Equal(t, 0, res.Rejected)
}
