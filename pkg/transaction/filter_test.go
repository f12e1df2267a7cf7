package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterByCategory(t *testing.T) {
	txs := []Transaction{
		tx(t, "20.05.2020", 1000, "ЖКХ", "", ""),
		tx(t, "15.04.2020", 1200, "жкх", "", ""),
		tx(t, "10.03.2020", 500, "Продукты", "", ""),
		tx(t, "05.02.2020", 1100, "", "без категории", ""),
	}

	got := FilterByCategory(txs, "ЖКХ")
	assert.Len(t, got, 1)
	for _, r := range got {
		assert.Equal(t, "ЖКХ", r.Category)
	}

	assert.Empty(t, FilterByCategory(txs, "Неправильная категория"))
	assert.Empty(t, FilterByCategory(txs, ""))
}

func TestFilterByWindow_InclusiveBounds(t *testing.T) {
	start := mustDate(t, "01.06.2025 00:00:00")
	end := mustDate(t, "30.06.2025 23:59:59")
	txs := []Transaction{
		{OperationDate: start.Add(-time.Nanosecond), Description: "before"},
		{OperationDate: start, Description: "start"},
		{OperationDate: start.Add(48 * time.Hour), Description: "middle"},
		{OperationDate: end, Description: "end"},
		{OperationDate: end.Add(time.Nanosecond), Description: "after"},
	}

	got := FilterByWindow(txs, start, end)

	var names []string
	for _, r := range got {
		names = append(names, r.Description)
	}
	assert.Equal(t, []string{"start", "middle", "end"}, names)
}

func TestMonthToDate(t *testing.T) {
	at := mustDate(t, "29.09.2018 15:30:00")
	start, end := MonthToDate(at)
	assert.True(t, mustDate(t, "01.09.2018 00:00:00").Equal(start))
	assert.True(t, at.Equal(end))
}

func TestSpendingByCategory(t *testing.T) {
	txs := []Transaction{
		tx(t, "20.05.2020", 1000, "ЖКХ", "", ""),
		tx(t, "15.04.2020", 1200, "ЖКХ", "", ""),
		tx(t, "10.03.2020", 500, "Продукты", "", ""),
		tx(t, "05.02.2020", 1100, "ЖКХ", "", ""),
	}

	got := SpendingByCategory(txs, "ЖКХ", mustDate(t, "20.05.2020"))

	assert.Len(t, got, 2)
	assert.Equal(t, 20, got[0].OperationDate.Day())
	assert.Equal(t, 15, got[1].OperationDate.Day())
}

func TestSpendingByCategory_DefaultsToNow(t *testing.T) {
	txs := []Transaction{
		{OperationDate: time.Now().Add(-24 * time.Hour), Category: "ЖКХ"},
		{OperationDate: time.Now().Add(-100 * 24 * time.Hour), Category: "ЖКХ"},
	}

	assert.Len(t, SpendingByCategory(txs, "ЖКХ", time.Time{}), 1)
}

func TestSpendingByCategory_CalendarDaysAcrossDST(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}
	local := time.Local
	time.Local = berlin
	t.Cleanup(func() { time.Local = local })

	txs := []Transaction{
		tx(t, "19.02.2020 23:30:00", 100, "ЖКХ", "before window", ""),
		tx(t, "20.02.2020 00:00:00", 200, "ЖКХ", "window start", ""),
		tx(t, "19.05.2020 12:00:00", 300, "ЖКХ", "inside", ""),
	}

	got := SpendingByCategory(txs, "ЖКХ", mustDate(t, "20.05.2020"))

	var names []string
	for _, r := range got {
		names = append(names, r.Description)
	}
	assert.Equal(t, []string{"window start", "inside"}, names)
}
