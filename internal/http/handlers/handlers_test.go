package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/campusgate/faqbot-backend/internal/faq"
	"github.com/campusgate/faqbot-backend/internal/platform/logger"
	"github.com/campusgate/faqbot-backend/internal/store"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.New(map[string]store.Section{
		"academics": {
			Questions: []string{"Which programs are offered?", "Is attendance mandatory?"},
			Answers:   map[int]string{1: "BBA, BCA and MBA.", 2: "Yes, 75 percent."},
		},
		"faq": {
			Questions: []string{
				"Is the degree valid abroad?",
				"Can I talk to current students?",
			},
			Answers: map[int]string{
				1: "Yes, the degree is internationally recognized.",
				2: "Here is a recorded testimonial.",
			},
			Media: map[int]store.MediaBundle{
				2: {
					Kind: store.KindVideos,
					Items: []store.MediaItem{
						{URL: "https://i.imgur.com/pDrkro4.mp4", Type: "video", Alt: "GGU Hyderabad Testimonial"},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("store: %v", err)
	}

	log := logger.NewNop()
	svc := faq.NewService(s)

	r := gin.New()
	questions := NewQuestionsHandler(log, svc)
	chat := NewChatHandler(log, svc)
	r.GET("/questions/:section", questions.GetQuestions)
	r.POST("/chat", chat.PostChat)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGetQuestionsSuccess(t *testing.T) {
	r := testRouter(t)
	rec := doRequest(t, r, http.MethodGet, "/questions/academics", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, http.StatusOK, rec.Body)
	}
	var out struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Questions) != 2 || out.Questions[0] != "Which programs are offered?" {
		t.Fatalf("unexpected questions: %+v", out.Questions)
	}
}

func TestGetQuestionsUnknownSectionListsValidOnes(t *testing.T) {
	r := testRouter(t)
	rec := doRequest(t, r, http.MethodGet, "/questions/unknown", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	var out struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := "Invalid section. Available sections: academics, faq"
	if out.Error != want {
		t.Fatalf("unexpected error message: got=%q want=%q", out.Error, want)
	}
}

func TestPostChatComposesAnswerWithVideo(t *testing.T) {
	r := testRouter(t)
	rec := doRequest(t, r, http.MethodPost, "/chat", `{"section":"faq","questionNumber":2}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, http.StatusOK, rec.Body)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := out["response"]; !ok {
		t.Fatalf("response key missing: %s", rec.Body)
	}
	if _, ok := out["images"]; ok {
		t.Fatalf("images key must be absent for a video bundle: %s", rec.Body)
	}
	var videos []store.MediaItem
	if err := json.Unmarshal(out["videos"], &videos); err != nil {
		t.Fatalf("decode videos: %v", err)
	}
	if len(videos) != 1 || videos[0].URL != "https://i.imgur.com/pDrkro4.mp4" || videos[0].Alt != "GGU Hyderabad Testimonial" {
		t.Fatalf("unexpected videos: %+v", videos)
	}
}

func TestPostChatWithoutMediaOmitsMediaKeys(t *testing.T) {
	r := testRouter(t)
	rec := doRequest(t, r, http.MethodPost, "/chat", `{"section":"academics","questionNumber":1}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d body=%s", rec.Code, rec.Body)
	}
	body := rec.Body.String()
	if strings.Contains(body, "images") || strings.Contains(body, "videos") {
		t.Fatalf("media keys leaked into media-free answer: %s", body)
	}
}

func TestPostChatMissingParams(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing section", `{"questionNumber":1}`},
		{"empty section", `{"section":"","questionNumber":1}`},
		{"missing question number", `{"section":"faq"}`},
		{"malformed json", `{"section":`},
	}

	r := testRouter(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, r, http.MethodPost, "/chat", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
			}
			var out struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if out.Error != "Missing required parameters: section and questionNumber" {
				t.Fatalf("unexpected error message: %q", out.Error)
			}
		})
	}
}

// A present-but-zero question number is not "missing": it reaches range
// validation and fails with the generic invalid message.
func TestPostChatZeroQuestionNumberIsPresent(t *testing.T) {
	r := testRouter(t)
	rec := doRequest(t, r, http.MethodPost, "/chat", `{"section":"faq","questionNumber":0}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid section or question number") {
		t.Fatalf("expected generic invalid message, got: %s", rec.Body)
	}
}

func TestPostChatInvalidInputsShareOneMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown section", `{"section":"sports","questionNumber":1}`},
		{"question number out of range", `{"section":"academics","questionNumber":999}`},
	}

	r := testRouter(t)
	var bodies []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, r, http.MethodPost, "/chat", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("unexpected status: got=%d", rec.Code)
			}
			var out struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if out.Error != "Invalid section or question number" {
				t.Fatalf("unexpected error message: %q", out.Error)
			}
			bodies = append(bodies, rec.Body.String())
		})
	}
	// Neither cause may be distinguishable from the body.
	if len(bodies) == 2 && bodies[0] != bodies[1] {
		t.Fatalf("error bodies differ between causes:\n%s\n%s", bodies[0], bodies[1])
	}
}
