package handler_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/testutil"
)

type uploadFile struct {
	name        string
	contentType string
	data        []byte
}

func pngData(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 300, 200))
	for x := 0; x < 300; x++ {
		img.Set(x, x%200, color.RGBA{R: 200, G: 80, B: 40, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, tourID string, fields map[string]string, files []uploadFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/tours/"+tourID+"/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return withParams(req.WithContext(adminCtx()), map[string]string{"id": tourID})
}

func TestImageHandler_Upload(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandlers(t, db).images
	tour := testutil.CreateTestTour(t, db, "Alps")
	id := tour.ID.String()

	t.Run("partial failure still succeeds", func(t *testing.T) {
		req := multipartRequest(t, id, map[string]string{"group": "destination"}, []uploadFile{
			{"lake.png", "image/png", pngData(t)},
			{"notes.txt", "text/plain", []byte("not an image")},
		})
		rr := serve(h.Upload, req)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		res := decode[domain.ImageUploadResultDTO](t, rr)
		assert.Equal(t, 1, res.Committed)
		assert.Equal(t, 1, res.Failed)
		require.Len(t, res.Images, 2)
		assert.Equal(t, domain.ImageStateCommitted, res.Images[0].State)
		assert.Equal(t, domain.ImageStateFailed, res.Images[1].State)
	})

	t.Run("every file failing is a bad request", func(t *testing.T) {
		req := multipartRequest(t, id, map[string]string{"group": "hotel"}, []uploadFile{
			{"a.txt", "text/plain", []byte("a")},
		})
		rr := serve(h.Upload, req)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, 1, decode[domain.ImageUploadResultDTO](t, rr).Failed)
	})

	t.Run("itinerary images need a valid day", func(t *testing.T) {
		req := multipartRequest(t, id, map[string]string{"group": "itinerary", "dayKey": "day_9"}, []uploadFile{
			{"day.png", "image/png", pngData(t)},
		})
		assert.Equal(t, http.StatusBadRequest, serve(h.Upload, req).Code)
	})

	t.Run("too large", func(t *testing.T) {
		big := bytes.Repeat([]byte{0xff}, 2*1024*1024)
		req := multipartRequest(t, id, map[string]string{"group": "tour"}, []uploadFile{
			{"huge.png", "image/png", big},
		})
		assert.Equal(t, http.StatusRequestEntityTooLarge, serve(h.Upload, req).Code)
	})

	t.Run("list and delete", func(t *testing.T) {
		rr := serve(h.List, newRequest(t, adminCtx(), http.MethodGet, "/?group=destination", nil, map[string]string{"id": id}))
		require.Equal(t, http.StatusOK, rr.Code)
		images := decode[[]domain.TourImageDTO](t, rr)
		require.NotEmpty(t, images)

		rr = serve(h.Delete, newRequest(t, adminCtx(), http.MethodDelete, "/", nil,
			map[string]string{"id": id, "imageId": images[0].ID.String()}))
		assert.Equal(t, http.StatusNoContent, rr.Code)

		rr = serve(h.DeleteAt, newRequest(t, adminCtx(), http.MethodDelete, "/", nil,
			map[string]string{"id": id, "group": "destination", "index": "40"}))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
