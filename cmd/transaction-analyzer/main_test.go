package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainFunction(t *testing.T) {
	// Test that rootCmd is defined and has expected properties
	assert.NotNil(t, rootCmd, "rootCmd should be defined")
	assert.Equal(t, "transaction-analyzer", rootCmd.Use)
	assert.Contains(t, rootCmd.Short, "Analyze bank transaction")
	assert.Contains(t, rootCmd.Long, "Transaction Analyzer")

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"home", "search", "transfers", "spending"})
}

const operationsCSV = `Дата операции;Дата платежа;Номер карты;Статус;Сумма операции;Валюта операции;Сумма операции с округлением;Категория;Описание
01.09.2018 12:00:00;01.09.2018;*3456;OK;-1000,00;RUB;1000,00;Супермаркеты;Магнит
02.09.2018 12:00:00;02.09.2018;*3456;OK;-2000,00;RUB;2000,00;Переводы;Иванов И.
15.04.2020 10:00:00;15.04.2020;;OK;-1200,00;RUB;1200,00;ЖКХ;Квартплата
`

func setup(t *testing.T) (cfgPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	csvPath := filepath.Join(dir, "operations.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(operationsCSV), 0o644))

	cfgPath = filepath.Join(dir, "config.toml")
	cfg := `[source]
type = "csv"
path = "` + filepath.ToSlash(csvPath) + `"

[logging]
level = "error"
console = false

[reports]
dir = "` + filepath.ToSlash(filepath.Join(dir, "reports")) + `"
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath, dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	cfgPath, dir := setup(t)

	out, err := run(t, "--config", cfgPath, "--env", filepath.Join(dir, "missing.env"), "search", "магнит")
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Супермаркеты", items[0]["Категория"])

	out, err = run(t, "--config", cfgPath, "search", "")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestTransfersCommand(t *testing.T) {
	cfgPath, _ := setup(t)

	out, err := run(t, "--config", cfgPath, "transfers")
	require.NoError(t, err)
	assert.Contains(t, out, "Иванов И.")
	assert.NotContains(t, out, "Магнит")
}

func TestHomeCommand(t *testing.T) {
	cfgPath, _ := setup(t)

	out, err := run(t, "--config", cfgPath, "home", "--date", "29.09.2018 12:00:00")
	require.NoError(t, err)

	var page map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.NotEmpty(t, page["greeting"])
	assert.Len(t, page["cards"], 1)
	assert.Len(t, page["top_transactions"], 2)
	assert.Equal(t, []any{}, page["currency_rates"])
	assert.Equal(t, []any{}, page["stock_prices"])
}

func TestSpendingCommand(t *testing.T) {
	cfgPath, dir := setup(t)
	outPath := filepath.Join(dir, "out", "spending.json")

	out, err := run(t, "--config", cfgPath, "spending", "--category", "ЖКХ", "--date", "20.05.2020", "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2020-04-15 10:00:00")

	saved, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(out), string(saved))

	_, err = run(t, "--config", cfgPath, "spending", "--date", "20.05.2020")
	assert.Error(t, err, "category flag is required")
}

func TestSpendingCommand_BadDateReportsErrorMarker(t *testing.T) {
	cfgPath, _ := setup(t)

	out, err := run(t, "--config", cfgPath, "spending", "--category", "ЖКХ", "--date", "вчера")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Contains(t, records[0], "error")
}

func TestSpendingCommand_MissingColumnReportsErrorMarker(t *testing.T) {
	cfgPath, dir := setup(t)
	csvPath := filepath.Join(dir, "operations.csv")
	noCategory := "Номер карты;Сумма операции с округлением;Категория\n*3456;1000,00;ЖКХ\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(noCategory), 0o644))

	out, err := run(t, "--config", cfgPath, "spending", "--category", "ЖКХ", "--date", "20.05.2020", "--save")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Contains(t, records[0]["error"], "Дата операции")

	saved, err := filepath.Glob(filepath.Join(dir, "reports", "report_*.json"))
	require.NoError(t, err)
	require.Len(t, saved, 1)
	data, err := os.ReadFile(saved[0])
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(out), string(data))
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[source]\ntype = \"ftp\"\n"), 0o644))

	_, err := run(t, "--config", cfgPath, "transfers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid source.type")
}
