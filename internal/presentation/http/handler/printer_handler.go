package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/presentation/http/dto/response"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/printer"
)

// PrinterHandler reports on and exercises the receipt printer
type PrinterHandler struct {
	printer     printer.Printer
	printerType string
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(p printer.Printer, printerType string) *PrinterHandler {
	return &PrinterHandler{printer: p, printerType: printerType}
}

// GetStatus returns printer connectivity
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved successfully", gin.H{
		"type":      h.printerType,
		"connected": h.printer.IsConnected(),
	})
}

// TestPrint sends a short test document to the printer
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	doc := printer.NewDocument(32)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("maitriPOS gateway").
		SetBold(false).
		Text("printer test").
		FeedLines(3).
		Cut()

	if err := h.printer.Print(doc.Bytes()); err != nil {
		response.ErrorWithCode(c, 502, "Printer is not reachable")
		return
	}

	response.OK(c, "Test page printed successfully", nil)
}
