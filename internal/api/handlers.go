package api

import (
	"encoding/base64"
	"image"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youruser/postcard/internal/fonts"
	imagepkg "github.com/youruser/postcard/internal/image"
	"github.com/youruser/postcard/internal/logger"
	"github.com/youruser/postcard/internal/palette"
	"github.com/youruser/postcard/internal/payload"
	"github.com/youruser/postcard/internal/postcard"
	"github.com/youruser/postcard/internal/util"
)

const (
	defaultSwatchSize = 44
	minSwatchSize     = 8
	maxSwatchSize     = 512
	defaultQRSize     = 400
	minQRSize         = 64
	maxQRSize         = 2048
)

// Server adapts the font list, palette and composer to HTTP.
type Server struct {
	Composer  *postcard.Composer
	Fonts     *fonts.Lister
	Faces     postcard.FaceSource
	Palette   *palette.Palette
	PublicURL string
	Log       *logger.Logger
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func indexParam(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return 0, false
	}
	return i, true
}

// intQuery reads a positive integer query value clamped to [min, max].
func intQuery(c *gin.Context, key string, def, min, max int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func writePNG(c *gin.Context, img image.Image) {
	b, err := imagepkg.EncodePNG(img)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// dropItemJSON is the wire form of a payload.Item. Binary data travels in
// data_base64; text and colors may use data directly.
type dropItemJSON struct {
	Type       string `json:"type" binding:"required"`
	Data       string `json:"data,omitempty"`
	DataBase64 string `json:"data_base64,omitempty"`
	URL        string `json:"url,omitempty" binding:"omitempty,url"`
}

func toWire(it payload.Item) dropItemJSON {
	return dropItemJSON{Type: it.Type, Data: string(it.Data), URL: it.URL}
}

func (d dropItemJSON) item() payload.Item {
	it := payload.Item{Type: d.Type, URL: d.URL, Data: []byte(d.Data)}
	if d.DataBase64 != "" {
		// undecodable data leaves the item empty; resolution then skips it
		b, err := base64.StdEncoding.DecodeString(d.DataBase64)
		if err != nil {
			b = nil
		}
		it.Data = b
	}
	return it
}

func (s *Server) listFonts(c *gin.Context) {
	names := s.Fonts.Names()
	c.JSON(http.StatusOK, gin.H{"count": len(names), "fonts": names})
}

func (s *Server) fontPreview(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}
	img, ok := s.Fonts.PreviewRow(i)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such font"})
		return
	}
	writePNG(c, img)
}

func (s *Server) fontDrag(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}
	item, ok := s.Fonts.DragItem(i)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such font"})
		return
	}
	c.JSON(http.StatusOK, toWire(item))
}

func (s *Server) listPalette(c *gin.Context) {
	type entry struct {
		Index int    `json:"index"`
		Name  string `json:"name,omitempty"`
		Hex   string `json:"hex"`
	}
	entries := s.Palette.Entries()
	out := make([]entry, len(entries))
	for i, e := range entries {
		out[i] = entry{Index: i, Name: e.Name, Hex: payload.HexColor(e.Color)}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "colors": out})
}

func (s *Server) swatch(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}
	img, ok := s.Palette.Swatch(i, intQuery(c, "size", defaultSwatchSize, minSwatchSize, maxSwatchSize))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such color"})
		return
	}
	writePNG(c, img)
}

func (s *Server) paletteDrag(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}
	item, ok := s.Palette.DragItem(i)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such color"})
		return
	}
	c.JSON(http.StatusOK, toWire(item))
}

func (s *Server) postcardState(c *gin.Context) {
	st, version, err := s.Composer.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	topFallback := !s.Faces.Has(st.TopFont)
	bottomFallback := !s.Faces.Has(st.BottomFont)
	c.JSON(http.StatusOK, gin.H{
		"version":              version,
		"top_text":             st.TopText,
		"bottom_text":          st.BottomText,
		"top_font":             st.TopFont,
		"bottom_font":          st.BottomFont,
		"top_font_fallback":    topFallback,
		"bottom_font_fallback": bottomFallback,
		"top_color":            payload.HexColor(st.TopColor),
		"bottom_color":         payload.HexColor(st.BottomColor),
		"has_background":       st.Background != nil,
		"canvas":               gin.H{"width": postcard.CanvasWidth, "height": postcard.CanvasHeight},
	})
}

func (s *Server) postcardImage(c *gin.Context) {
	img, err := s.Composer.Render(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	writePNG(c, img)
}

// qr endpoint returns a PNG QR code pointing at the rendered postcard
func (s *Server) postcardQR(c *gin.Context) {
	text := s.PublicURL + "/api/postcard.png"
	b, err := imagepkg.GenerateQRPNG(text, intQuery(c, "size", defaultQRSize, minQRSize, maxQRSize))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (s *Server) uploadBackground(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	raw, err := io.ReadAll(io.LimitReader(f, util.MaxDownloadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	img, err := imagepkg.DecodeImage(raw)
	if err != nil {
		s.Log.Warn("background rejected", "filename", fh.Filename, "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.Composer.SetBackgroundImage(c.Request.Context(), img); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": true, "width": img.Bounds().Dx(), "height": img.Bounds().Dy()})
}

// tap seeds the edit prompt for the target under y
func (s *Server) tap(c *gin.Context) {
	var req struct {
		Y *float64 `json:"y" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target, text, err := s.Composer.EditText(c.Request.Context(), *req.Y)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"target": target.String(), "text": text})
}

// editText closes the edit prompt. Commit without a text field counts as cancel.
func (s *Server) editText(c *gin.Context) {
	var req struct {
		Target string  `json:"target" binding:"required,oneof=top bottom"`
		Action string  `json:"action" binding:"required,oneof=commit cancel"`
		Text   *string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target, _ := postcard.ParseTarget(req.Target)
	if req.Action == "cancel" || req.Text == nil {
		c.JSON(http.StatusOK, gin.H{"applied": false})
		return
	}
	if err := s.Composer.CommitText(c.Request.Context(), target, *req.Text); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": true})
}

// drop applies a drag session at canvas height y. Unusable payloads are not
// errors; the response just reports applied=false.
func (s *Server) drop(c *gin.Context) {
	var req struct {
		Y     *float64       `json:"y" binding:"required"`
		Items []dropItemJSON `json:"items" binding:"dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session := make(payload.Session, 0, len(req.Items))
	for _, it := range req.Items {
		session = append(session, it.item())
	}
	applied, err := s.Composer.HandleDrop(c.Request.Context(), session, *req.Y)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}
