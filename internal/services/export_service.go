package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// csvHeader is the fixed column set of the tabular export, in order.
var csvHeader = []string{
	"Request ID",
	"Employee Name",
	"Department",
	"Leave Type",
	"Start Date",
	"End Date",
	"Duration",
	"Status",
	"Submitted",
}

// CompanyInfo brands the generated certificate.
type CompanyInfo struct {
	Name       string
	LegalName  string
	CertPrefix string
}

// ExportServiceImpl implements domain.ExportService
type ExportServiceImpl struct {
	leaveRepo domain.LeaveRepository
	company   CompanyInfo
}

// NewExportService creates a new export service
func NewExportService(leaveRepo domain.LeaveRepository, company CompanyInfo) domain.ExportService {
	return &ExportServiceImpl{leaveRepo: leaveRepo, company: company}
}

// RequestsCSV implements domain.ExportService: one row per request, dated
// download filename.
func (s *ExportServiceImpl) RequestsCSV(ctx context.Context) ([]byte, string, error) {
	requests, err := s.leaveRepo.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, req := range requests {
		row := []string{
			req.ID,
			req.EmployeeName,
			req.Department,
			string(req.LeaveType),
			req.StartDate.Format("2006-01-02"),
			req.EndDate.Format("2006-01-02"),
			strconv.Itoa(req.Duration),
			string(req.FinalStatus),
			req.SubmittedAt.Format("2006-01-02"),
		}
		if err := w.Write(row); err != nil {
			return nil, "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("leave_requests_%s.csv", time.Now().UTC().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// Certificate implements domain.ExportService. Only terminal requests have
// a certificate; the filename is deterministic:
// <prefix>_<requestID>_<employeeNameWithUnderscores>.pdf
func (s *ExportServiceImpl) Certificate(ctx context.Context, requestID string) ([]byte, string, error) {
	req, err := s.leaveRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, "", err
	}
	if !req.PDFGenerated {
		return nil, "", domain.ErrCertificateNotReady
	}

	payload, err := s.renderCertificate(req)
	if err != nil {
		return nil, "", err
	}

	name := strings.Join(strings.Fields(req.EmployeeName), "_")
	filename := fmt.Sprintf("%s_%s_%s.pdf", s.company.CertPrefix, req.ID, name)
	return payload, filename, nil
}

func (s *ExportServiceImpl) renderCertificate(req *domain.LeaveRequest) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(30, 64, 175)
	pdf.Rect(0, 0, 210, 30, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(20, 20, s.company.Name)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(20, 25, s.company.LegalName)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(20, 45, "LEAVE REQUEST APPROVAL CERTIFICATE")

	y := 60.0
	const lineHeight = 6.0
	line := func(style string, text string) {
		pdf.SetFont("Helvetica", style, 10)
		pdf.Text(20, y, text)
		y += lineHeight
	}

	line("B", "EMPLOYEE INFORMATION")
	line("", fmt.Sprintf("Employee Name: %s", req.EmployeeName))
	line("", fmt.Sprintf("Department: %s", req.Department))
	line("", fmt.Sprintf("Employee ID: %d", req.EmployeeID))
	y += lineHeight

	line("B", "LEAVE DETAILS")
	line("", fmt.Sprintf("Leave Type: %s", strings.ToUpper(strings.ReplaceAll(string(req.LeaveType), "_", " "))))
	line("", fmt.Sprintf("Start Date: %s", req.StartDate.Format("2006-01-02")))
	line("", fmt.Sprintf("End Date: %s", req.EndDate.Format("2006-01-02")))
	line("", fmt.Sprintf("Duration: %d days", req.Duration))
	visa := "Not Required"
	if req.ExitReentryVisa {
		visa = "Required"
	}
	line("", fmt.Sprintf("Exit/Re-entry Visa: %s", visa))
	line("", fmt.Sprintf("Reason: %s", req.Reason))
	y += lineHeight

	if req.EmergencyContact.Name != "" {
		line("B", "EMERGENCY CONTACT")
		line("", fmt.Sprintf("Name: %s", req.EmergencyContact.Name))
		line("", fmt.Sprintf("Phone: %s", req.EmergencyContact.Phone))
		line("", fmt.Sprintf("Relationship: %s", req.EmergencyContact.Relationship))
		y += lineHeight
	}

	line("B", "APPROVAL TRAIL")
	for _, step := range req.ApprovalSteps {
		line("", fmt.Sprintf("%d. %s APPROVAL", step.Step, strings.ToUpper(string(step.ApproverRole))))
		if step.ApproverName != "" {
			line("", fmt.Sprintf("   Approver: %s", step.ApproverName))
		}
		line("", fmt.Sprintf("   Status: %s", strings.ToUpper(string(step.Status))))
		if step.DecidedAt != nil {
			line("", fmt.Sprintf("   Date: %s", step.DecidedAt.Format("2006-01-02 15:04:05")))
		}
		if step.Remarks != "" {
			line("", fmt.Sprintf("   Remarks: %s", step.Remarks))
		}
		if step.DigitalSignature {
			line("", "   Digital Signature: Verified")
		}
		if step.OTPVerified {
			line("", "   OTP Verification: Verified")
		}
		y += lineHeight
	}

	pdf.SetFont("Helvetica", "B", 12)
	if req.FinalStatus == domain.StatusApproved {
		pdf.SetTextColor(0, 128, 0)
	} else {
		pdf.SetTextColor(255, 0, 0)
	}
	pdf.Text(20, y, fmt.Sprintf("FINAL STATUS: %s", strings.ToUpper(string(req.FinalStatus))))

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(20, 280, fmt.Sprintf("This document is digitally generated and certified by %s Leave Management System", s.company.Name))
	pdf.Text(20, 285, fmt.Sprintf("© %s Leave System | Powered by %s", s.company.Name, s.company.LegalName))
	pdf.Text(20, 290, fmt.Sprintf("Generated on: %s", time.Now().UTC().Format("2006-01-02 15:04:05")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
