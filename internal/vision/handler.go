package vision

import (
	"io"
	"strings"

	visionclient "kitchenops-backend/pkg/clients/vision"

	"github.com/gofiber/fiber/v2"
)

const maxImageBytes = 10 << 20

func readUploadedImage(c *fiber.Ctx) ([]byte, string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "An image file is required (field 'image')")
	}
	if fileHeader.Size > maxImageBytes {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Image is too large (max 10 MB)")
	}

	mediaType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Uploaded file is not an image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Could not open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Could not read uploaded file")
	}

	return data, mediaType, nil
}

// POST /api/vision/temperature-read
// Reads a thermometer display photo and suggests a reading. The suggestion is
// never saved directly, the client submits it through the normal check flow.
func TemperatureReadHandler(client visionclient.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Vision features are not configured")
		}

		data, mediaType, err := readUploadedImage(c)
		if err != nil {
			return err
		}

		reading, err := client.ReadTemperatureDisplay(c.Context(), data, mediaType)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Could not read the temperature display")
		}

		return c.JSON(reading)
	}
}

// POST /api/vision/invoice-scan
func InvoiceScanHandler(client visionclient.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Vision features are not configured")
		}

		data, mediaType, err := readUploadedImage(c)
		if err != nil {
			return err
		}

		extraction, err := client.ExtractInvoice(c.Context(), data, mediaType)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Could not extract the invoice")
		}

		return c.JSON(extraction)
	}
}
