package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/pkg/helpers"
)

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderAssignments(w io.Writer, title string, assignments []models.RoomAssignment) {
	color.New(color.FgYellow).Fprintf(w, "\n%s\n", title)
	if len(assignments) == 0 {
		fmt.Fprintln(w, "No confirmed applications are waiting for a seat.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Application", "Exam", "Room", "Seat", "Date", "Time", "Address"})
	for _, a := range assignments {
		date := ""
		if a.ExamDate != nil {
			date = a.ExamDate.Format(helpers.DateLayout)
		}
		table.Append([]string{
			strconv.FormatInt(a.ApplicationID, 10),
			strconv.FormatInt(a.ExamID, 10),
			a.RoomNumber,
			strconv.Itoa(a.SeatNumber),
			date,
			a.ExamTime,
			a.Address,
		})
	}
	table.Render()
	fmt.Fprintf(w, "%d seat(s)\n", len(assignments))
}

func verdictColor(status models.VerdictStatus) *color.Color {
	switch status {
	case models.VerdictAdmitted:
		return color.New(color.FgGreen, color.Bold)
	case models.VerdictNotAdmitted:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func renderResult(w io.Writer, result *models.ApplicationResult) {
	app := result.Application
	color.New(color.FgYellow).Fprintf(w, "\nApplication %d (exam %d, major %s, %s)\n", app.ID, app.ExamID, app.Major, app.Status)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Subject", "Score"})
	for _, s := range result.Scores {
		table.Append([]string{s.Subject, formatScore(s.Score)})
	}
	table.SetFooter([]string{"Total", formatScore(result.Verdict.Total)})
	table.Render()

	threshold := "not published"
	if result.Verdict.MinScore != nil {
		threshold = formatScore(*result.Verdict.MinScore)
	}
	fmt.Fprintf(w, "Threshold: %s\n", threshold)
	fmt.Fprint(w, "Verdict: ")
	verdictColor(result.Verdict.Status).Fprintln(w, string(result.Verdict.Status))
}
