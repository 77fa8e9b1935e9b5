package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"ID", "Title", "Artist", "Description", "Price", "Image URL",
	"Category", "Available", "Created", "Has Image",
}

func (s *artworkService) ExportArtworks(ctx context.Context, w io.Writer) error {
	const op = "service.ArtworkService.ExportArtworks"
	logger := s.log.With(slog.String("op", op))

	artworks, err := s.artworkRepo.ListArtworks(ctx)
	if err != nil {
		logger.Error("failed to list artworks", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Artworks")
	if err != nil {
		return fmt.Errorf("%s: failed to add sheet: %w", op, err)
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, a := range artworks {
		row := sheet.AddRow()
		row.AddCell().SetValue(a.ID)
		row.AddCell().SetValue(a.Title)
		row.AddCell().SetValue(a.Artist)
		row.AddCell().SetValue(a.Description)
		row.AddCell().SetValue(a.Price.InexactFloat64())
		row.AddCell().SetValue(a.ImageURL)
		row.AddCell().SetValue(a.Category)
		row.AddCell().SetValue(yesNo(a.IsAvailable))
		row.AddCell().SetValue(a.CreatedDate.Format("2006-01-02"))
		row.AddCell().SetValue(yesNo(a.HasImage))
	}

	if err := file.Write(w); err != nil {
		logger.Error("failed to write workbook", slog.Any("error", err))
		return fmt.Errorf("%s: failed to write workbook: %w", op, err)
	}

	logger.Info("catalog exported", slog.Int("rows", len(artworks)))
	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
