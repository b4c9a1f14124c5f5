package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resumeapi/internal/config"
	"resumeapi/internal/resume"
)

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
}

func TestSkillUpsertThenUpdate(t *testing.T) {
	s := newTestServer(t)
	token := s.createUser(t, "owner", "secret", false)

	w := s.doJSON(t, http.MethodPut, "/skills", token, resume.Skill{Skill: "Git", Level: 50})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 50, decode[resume.Skill](t, w).Level)

	w = s.doJSON(t, http.MethodPut, "/skills", token, resume.Skill{Skill: "Git", Level: 90})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/skills/Git", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[resume.Skill](t, w)
	assert.Equal(t, "Git", got.Skill)
	assert.Equal(t, 90, got.Level)

	w = s.do(http.MethodGet, "/skills", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[resume.Skills](t, w).Skills, 1)
}

func TestUpsertRejectsInvalidBody(t *testing.T) {
	s := newTestServer(t)
	token := s.createUser(t, "owner", "secret", false)

	cases := []struct {
		name    string
		path    string
		payload any
	}{
		{"level above range", "/skills", map[string]any{"skill": "Go", "level": 150}},
		{"missing skill", "/skills", map[string]any{"level": 10}},
		{"social link not a url", "/social_links", map[string]any{"platform": "github", "link": "nope"}},
		{"gpa above range", "/education", map[string]any{"institution": "MIT", "degree": "BSc", "graduation_date": 2010, "gpa": 7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.doJSON(t, http.MethodPut, tc.path, token, tc.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestTokenFailuresDoNotLockAccount(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "owner", "secret", false)

	for i := 0; i < 3; i++ {
		w := s.postToken("owner", "wrong")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"incorrect username or password"}`, w.Body.String())
	}

	w := s.postToken("owner", "secret")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tok := decode[resume.Token](t, w)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.NotEmpty(t, tok.AccessToken)

	w = s.do(http.MethodGet, "/users/me", tok.AccessToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"owner","disabled":false}`, w.Body.String())
}

func TestTokenRejectsDisabledAndMalformed(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "retired", "secret", true)

	w := s.postToken("retired", "secret")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/token", "", nil, "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCertificationAuthorization(t *testing.T) {
	s := newTestServer(t)
	active := s.createUser(t, "owner", "secret", false)
	disabled := s.createUser(t, "retired", "secret", true)

	w := s.doJSON(t, http.MethodPut, "/certifications", active, resume.Certification{Cert: "CCIE", FullName: "Cisco Certified Internetwork Expert", Valid: true, Progress: 100})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodDelete, "/certifications/CCIE", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	w = s.do(http.MethodDelete, "/certifications/CCIE", "not-a-jwt", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodDelete, "/certifications/CCIE", disabled, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"inactive user"}`, w.Body.String())

	w = s.do(http.MethodDelete, "/certifications/CCIE", active, nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = s.do(http.MethodGet, "/certifications/CCIE", "", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, "/certifications/CCIE", active, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCertificationsValidOnly(t *testing.T) {
	s := newTestServer(t)
	token := s.createUser(t, "owner", "secret", false)

	for _, c := range []resume.Certification{
		{Cert: "CCNA", Valid: false, Progress: 100},
		{Cert: "CKA", Valid: true, Progress: 100},
	} {
		w := s.doJSON(t, http.MethodPut, "/certifications", token, c)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(http.MethodGet, "/certifications?valid_only=true", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	certs := decode[resume.CertificationHistory](t, w).CertificationHistory
	require.Len(t, certs, 1)
	assert.Equal(t, "CKA", certs[0].Cert)

	w = s.do(http.MethodGet, "/certifications", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[resume.CertificationHistory](t, w).CertificationHistory, 2)

	w = s.do(http.MethodGet, "/certifications?valid_only=maybe", "", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidPathID(t *testing.T) {
	s := newTestServer(t)
	token := s.createUser(t, "owner", "secret", false)

	for _, path := range []string{"/education/abc", "/experience/-1", "/experience/detail/1.5", "/experience/highlight/0"} {
		w := s.do(http.MethodGet, path, "", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}

	w := s.do(http.MethodDelete, "/education/abc", token, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKeyedItemShapes(t *testing.T) {
	s := newTestServer(t)
	token := s.createUser(t, "owner", "secret", false)

	require.Equal(t, http.StatusCreated, s.doJSON(t, http.MethodPut, "/basic_info", token, resume.BasicInfoItem{Fact: "name", Value: "Ada"}).Code)
	require.Equal(t, http.StatusCreated, s.doJSON(t, http.MethodPut, "/social_links", token, resume.SocialLink{Platform: "github", Link: "https://github.com/ada"}).Code)
	require.Equal(t, http.StatusCreated, s.doJSON(t, http.MethodPut, "/preferences", token, resume.Preference{Preference: "remote", Value: "yes"}).Code)

	w := s.do(http.MethodGet, "/basic_info/name", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Ada"}`, w.Body.String())

	w = s.do(http.MethodGet, "/social_links", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"github":"https://github.com/ada"}`, w.Body.String())

	w = s.do(http.MethodGet, "/preferences/remote", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"remote":"yes"}`, w.Body.String())

	w = s.do(http.MethodGet, "/basic_info/missing", "", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "missing")
}

func TestExperienceWithChildren(t *testing.T) {
	s := newTestServer(t)
	token := s.createUser(t, "owner", "secret", false)

	w := s.doJSON(t, http.MethodPut, "/experience", token, resume.Job{Employer: "Acme", JobTitle: "Engineer"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	job := decode[resume.Job](t, w)

	w = s.doJSON(t, http.MethodPut, "/experience/detail", token, resume.JobDetail{JobID: job.ID, Detail: "built things"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.doJSON(t, http.MethodPut, "/experience/highlight", token, resume.JobHighlight{JobID: 999, Highlight: "orphan"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/experience", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[resume.JobHistory](t, w)
	require.Len(t, history.Experience, 1)
	require.Len(t, history.Experience[0].Details, 1)
	assert.Equal(t, "built things", history.Experience[0].Details[0].Detail)
	assert.Empty(t, history.Experience[0].Highlights)
}

func TestInterestsByCategory(t *testing.T) {
	s := newTestServer(t)
	token := s.createUser(t, "owner", "secret", false)

	w := s.doJSON(t, http.MethodPut, "/interests/technical", token, resume.Interest{Interest: "compilers"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/interests/technical", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"technical":["compilers"]}`, w.Body.String())

	w = s.do(http.MethodGet, "/interests/culinary", "", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, "/interests/compilers", token, nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestFullResumeSections(t *testing.T) {
	s := newTestServer(t)
	token := s.createUser(t, "owner", "secret", false)
	require.Equal(t, http.StatusCreated, s.doJSON(t, http.MethodPut, "/competencies", token, resume.Competency{Competency: "Leadership"}).Code)

	w := s.do(http.MethodGet, "/", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	doc := decode[map[string]any](t, w)
	for _, key := range []string{"basic_info", "education", "experience", "certifications", "side_projects", "interests", "social_links", "skills", "competencies", "preferences"} {
		assert.Contains(t, doc, key)
	}
	assert.Equal(t, []any{"Leadership"}, doc["competencies"].(map[string]any)["competencies"])
}

func TestUsersRequireToken(t *testing.T) {
	s := newTestServer(t)
	token := s.createUser(t, "owner", "secret", false)
	s.createUser(t, "retired", "secret", true)

	w := s.do(http.MethodGet, "/users", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/users", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	users := decode[resume.Users](t, w).Users
	assert.Len(t, users, 2)
}

func TestStoreFailureIsInternalError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	s := newTestServerWith(t, db, MediaDeps{}, config.ResumeConfig{})
	mock.ExpectQuery(`SELECT \* FROM "skills"`).WillReturnError(errors.New("connection reset by peer"))

	w := s.do(http.MethodGet, "/skills", "", nil, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
