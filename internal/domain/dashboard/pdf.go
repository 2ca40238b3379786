package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"checador/internal/domain/attendance"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Fecha", 25},
	{"Usuario", 25},
	{"Nombre", 70},
	{"Entrada", 22},
	{"Salida", 22},
	{"Registro", 26},
}

// AttendancePDF renders the filtered attendance listing as an A4 table.
func (s *Service) AttendancePDF(ctx context.Context, f attendance.Filter) ([]byte, error) {
	rows, err := s.attendance.Query(ctx, f)
	if err != nil {
		return nil, err
	}
	return renderAttendance(rows, f, time.Now())
}

func renderAttendance(rows []attendance.Listed, f attendance.Filter, generated time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Registro de asistencias", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Registro de asistencias"))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(describeFilter(f)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generado: %s", generated.Format("2006-01-02 15:04")))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		values := []string{
			row.Fecha,
			row.Usuario.Username,
			row.Usuario.Persona.Nombre + " " + row.Usuario.Persona.ApellidoPaterno + optional(row.Usuario.Persona.ApellidoMaterno, " "),
			optional(row.HoraEntrada, ""),
			optional(row.HoraSalida, ""),
			optional(row.RegistroManual, ""),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, tr(values[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(rows) == 0 {
		pdf.Cell(0, 8, tr("Sin registros para el filtro seleccionado."))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render attendance pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func describeFilter(f attendance.Filter) string {
	out := "Filtro:"
	if f.UsuarioID != nil {
		out += fmt.Sprintf(" usuario %d", *f.UsuarioID)
	}
	switch {
	case f.HasRange():
		out += fmt.Sprintf(" del %s al %s", f.FechaInicio, f.FechaFin)
	case f.Fecha != "":
		out += " fecha " + f.Fecha
	}
	if out == "Filtro:" {
		out += " todos los registros"
	}
	return out
}

func optional(value *string, prefix string) string {
	if value == nil || *value == "" {
		return ""
	}
	return prefix + *value
}
