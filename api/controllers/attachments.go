package controllers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/partsdesk/partsdesk-backend/api/responses"
	"github.com/partsdesk/partsdesk-backend/internal/attachments"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
)

// AttachmentUpload accepts one multipart file under the "file" field.
func AttachmentUpload(svc attachments.Service, maxBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "attachment service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		complaintID, err := parseUintParam(r, "complaintId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1024)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parsing multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "multipart field \"file\" is required"))
			return
		}
		defer file.Close()

		result, err := svc.Upload(r.Context(), attachments.UploadInput{
			ComplaintID: complaintID,
			Filename:    header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AttachmentList returns a complaint's attachment metadata.
func AttachmentList(svc attachments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "attachment service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		complaintID, err := parseUintParam(r, "complaintId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), complaintID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AttachmentDownload streams the stored file back with its original
// name.
func AttachmentDownload(svc attachments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "attachment service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		attachmentID, err := parseUintParam(r, "attachmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		download, err := svc.OpenDownload(r.Context(), attachmentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer download.Body.Close()

		w.Header().Set("Content-Type", download.Attachment.MimeType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", download.Attachment.OriginalFilename))
		if _, err := io.Copy(w, download.Body); err != nil {
			logg.Error(r.Context(), "streaming attachment", err)
		}
	}
}

// AttachmentDelete removes an attachment and its file.
func AttachmentDelete(svc attachments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "attachment service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		attachmentID, err := parseUintParam(r, "attachmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), attachmentID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
