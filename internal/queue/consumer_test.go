package queue

import (
    "strings"
    "testing"
)

func TestFormatDecision(t *testing.T) {
    ev := AppointmentDecidedEvent{
        AppointmentID: 12,
        PatientID:     3,
        DoctorID:      7,
        DoctorName:    "Dr. Osei",
        Date:          "2026-09-10",
        Time:          "14:30",
        Status:        "approved",
        DecidedAt:     "2026-09-01T10:00:00Z",
    }
    line := formatDecision(ev)
    if !strings.HasSuffix(line, "\n") {
        t.Fatal("entry is not newline terminated")
    }
    if strings.Count(line, "\n") != 1 {
        t.Fatal("entry spans more than one line")
    }
    for _, want := range []string{"approved", "appointment_id=12", "patient_id=3", "doctor_id=7", `"Dr. Osei"`, "2026-09-10", "14:30", "2026-09-01T10:00:00Z"} {
        if !strings.Contains(line, want) {
            t.Errorf("entry %q missing %q", line, want)
        }
    }
}
