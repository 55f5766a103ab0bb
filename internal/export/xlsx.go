package export

import (
	"strconv"

	"github.com/tealeg/xlsx/v3"

	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/domain"
)

var header = []string{
	"ลำดับ",
	"รหัสวิชา",
	"ชื่อวิชา (ไทย)",
	"ชื่อวิชา (อังกฤษ)",
	"ประเภท",
	"กลุ่ม",
	"วัน",
	"เวลา",
	"ห้อง",
	"ผู้สอน",
}

// Workbook renders flattened display rows into a single-sheet spreadsheet.
// Child rows repeat the course columns blank so the sheet reads like the
// on-screen table.
func Workbook(rows []domain.DisplayRow) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Timetable")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, title := range header {
		headerRow.AddCell().SetString(title)
	}

	for _, row := range rows {
		out := sheet.AddRow()

		if row.IsChild {
			for i := 0; i < 5; i++ {
				out.AddCell().SetString("")
			}
		} else {
			out.AddCell().SetString(strconv.Itoa(row.Ordinal))
			out.AddCell().SetString(row.Course.Code)
			out.AddCell().SetString(row.Course.NameTH)
			out.AddCell().SetString(row.Course.NameEN)
			out.AddCell().SetString(row.Course.TypeName)
		}

		var meeting domain.Meeting
		section := row.Section
		if section != nil {
			meeting = section.Representative()
			out.AddCell().SetString(strconv.Itoa(section.SectionNumber))
		} else {
			out.AddCell().SetString("")
		}
		out.AddCell().SetString(meeting.Day)
		out.AddCell().SetString(meeting.TimeSpan)
		if meeting.Room != "" {
			out.AddCell().SetString(meeting.Room)
		} else {
			out.AddCell().SetString("รอจัดห้อง")
		}

		instructors := ""
		for i, name := range row.Course.InstructorNames {
			if i > 0 {
				instructors += ", "
			}
			instructors += name
		}
		out.AddCell().SetString(instructors)
	}

	return file, nil
}
