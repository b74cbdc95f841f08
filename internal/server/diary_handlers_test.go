package server

import (
	"fmt"
	"net/http"
	"testing"

	"momentcanvas/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDiary(t *testing.T) {
	app, _ := newTestApp(t)
	_, pair := signupAndLogin(t, app, "author_one", "author.one")

	t.Run("Creates an entry", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/diaries", pair.AccessToken,
			diaryBody("2026-08-01", models.VisibilityPublic))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		diary := decodeBody[models.Diary](t, resp)
		assert.Equal(t, "2026-08-01", diary.TargetDate.Format("2006-01-02"))
		assert.Equal(t, models.No, diary.IsDeleted)
	})

	t.Run("Second entry on the same date is a conflict", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/diaries", pair.AccessToken,
			diaryBody("2026-08-01", models.VisibilityPrivate))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Mood out of range rejected", func(t *testing.T) {
		body := diaryBody("2026-08-02", models.VisibilityPublic)
		body.Mood = 9
		resp := doJSON(t, app, http.MethodPost, "/api/diaries", pair.AccessToken, body)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Bad date format rejected", func(t *testing.T) {
		body := diaryBody("2026-08-02", models.VisibilityPublic)
		body.TargetDate = "08/02/2026"
		resp := doJSON(t, app, http.MethodPost, "/api/diaries", pair.AccessToken, body)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetDiaryVisibility(t *testing.T) {
	app, _ := newTestApp(t)
	ownerID, owner := signupAndLogin(t, app, "vis_owner", "vis.owner")
	viewerID, viewer := signupAndLogin(t, app, "vis_viewer", "vis.viewer")

	publicID := createDiary(t, app, owner.AccessToken, "2026-08-01", models.VisibilityPublic)
	followID := createDiary(t, app, owner.AccessToken, "2026-08-02", models.VisibilityFollowOnly)
	privateID := createDiary(t, app, owner.AccessToken, "2026-08-03", models.VisibilityPrivate)

	get := func(token string, id uint) *http.Response {
		return doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/diaries/%d", id), token, nil)
	}

	t.Run("Stranger sees public only", func(t *testing.T) {
		resp := get(viewer.AccessToken, publicID)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		for _, id := range []uint{followID, privateID} {
			resp := get(viewer.AccessToken, id)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			_ = resp.Body.Close()
		}
	})

	t.Run("Mutual follow unlocks follow-only", func(t *testing.T) {
		followBothWays(t, app, owner.AccessToken, viewer.AccessToken, ownerID, viewerID)

		resp := get(viewer.AccessToken, followID)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		// Private stays hidden even from mutual followers.
		resp = get(viewer.AccessToken, privateID)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Owner always sees everything", func(t *testing.T) {
		for _, id := range []uint{publicID, followID, privateID} {
			resp := get(owner.AccessToken, id)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			_ = resp.Body.Close()
		}
	})

	t.Run("Missing id is indistinguishable from hidden", func(t *testing.T) {
		resp := get(viewer.AccessToken, 9999)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestListDiaries(t *testing.T) {
	app, _ := newTestApp(t)
	ownerID, owner := signupAndLogin(t, app, "list_owner", "list.owner")
	_, viewer := signupAndLogin(t, app, "list_viewer", "list.viewer")

	createDiary(t, app, owner.AccessToken, "2026-07-05", models.VisibilityPublic)
	createDiary(t, app, owner.AccessToken, "2026-07-12", models.VisibilityPrivate)
	createDiary(t, app, owner.AccessToken, "2026-08-02", models.VisibilityPublic)

	t.Run("Owner sees the whole month", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/diaries?yearMonth=2026-07", owner.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		summaries := decodeBody[[]models.DiarySummary](t, resp)
		assert.Len(t, summaries, 2)
	})

	t.Run("Stranger sees public entries only", func(t *testing.T) {
		path := fmt.Sprintf("/api/diaries?authorId=%d&yearMonth=2026-07", ownerID)
		resp := doJSON(t, app, http.MethodGet, path, viewer.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		summaries := decodeBody[[]models.DiarySummary](t, resp)
		require.Len(t, summaries, 1)
		assert.Equal(t, models.VisibilityPublic, summaries[0].Visibility)
	})

	t.Run("Deleted listing is owner only", func(t *testing.T) {
		path := fmt.Sprintf("/api/diaries?authorId=%d&yearMonth=2026-07&deleted=Y", ownerID)
		resp := doJSON(t, app, http.MethodGet, path, viewer.AccessToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Malformed month rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/diaries?yearMonth=202607", owner.AccessToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetWrittenDates(t *testing.T) {
	app, _ := newTestApp(t)
	_, pair := signupAndLogin(t, app, "calendar", "cal.endar")

	createDiary(t, app, pair.AccessToken, "2026-08-03", models.VisibilityPublic)
	createDiary(t, app, pair.AccessToken, "2026-08-10", models.VisibilityPrivate)

	resp := doJSON(t, app, http.MethodGet, "/api/diaries/dates", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dates := decodeBody[[]string](t, resp)
	assert.Equal(t, []string{"2026-08-03", "2026-08-10"}, dates)
}

func TestUpdateDiary(t *testing.T) {
	app, _ := newTestApp(t)
	_, owner := signupAndLogin(t, app, "upd_owner", "upd.owner")
	_, other := signupAndLogin(t, app, "upd_other", "upd.other")

	diaryID := createDiary(t, app, owner.AccessToken, "2026-08-01", models.VisibilityPublic)
	createDiary(t, app, owner.AccessToken, "2026-08-02", models.VisibilityPublic)

	path := fmt.Sprintf("/api/diaries/%d", diaryID)

	t.Run("Non-owner of a visible entry is forbidden", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, path, other.AccessToken,
			diaryBody("2026-08-01", models.VisibilityPublic))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Owner edits fields", func(t *testing.T) {
		body := diaryBody("2026-08-01", models.VisibilityPrivate)
		body.Title = "rewritten"
		resp := doJSON(t, app, http.MethodPut, path, owner.AccessToken, body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		diary := decodeBody[models.Diary](t, resp)
		assert.Equal(t, "rewritten", diary.Title)
		assert.Equal(t, models.VisibilityPrivate, diary.Visibility)
	})

	t.Run("Moving onto an occupied date is a conflict", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, path, owner.AccessToken,
			diaryBody("2026-08-02", models.VisibilityPublic))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Hidden entry looks missing to a non-owner", func(t *testing.T) {
		// The entry went private in the edit above.
		resp := doJSON(t, app, http.MethodPut, path, other.AccessToken,
			diaryBody("2026-08-01", models.VisibilityPublic))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteAndRecoverDiary(t *testing.T) {
	app, _ := newTestApp(t)
	_, owner := signupAndLogin(t, app, "del_owner", "del.owner")
	_, viewer := signupAndLogin(t, app, "del_viewer", "del.viewer")

	diaryID := createDiary(t, app, owner.AccessToken, "2026-08-01", models.VisibilityPublic)
	path := fmt.Sprintf("/api/diaries/%d", diaryID)

	t.Run("Soft delete hides from others, not the owner", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, path, owner.AccessToken, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodGet, path, owner.AccessToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodGet, path, viewer.AccessToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Recover blocked when the date was reoccupied", func(t *testing.T) {
		createDiary(t, app, owner.AccessToken, "2026-08-01", models.VisibilityPublic)

		resp := doJSON(t, app, http.MethodPost, path+"/recover", owner.AccessToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Second delete is permanent", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, path, owner.AccessToken, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodGet, path, owner.AccessToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestLikeEndpoints(t *testing.T) {
	app, _ := newTestApp(t)
	_, owner := signupAndLogin(t, app, "like_owner", "like.owner")
	_, fan := signupAndLogin(t, app, "like_fan", "like.fan")

	publicID := createDiary(t, app, owner.AccessToken, "2026-08-01", models.VisibilityPublic)
	privateID := createDiary(t, app, owner.AccessToken, "2026-08-02", models.VisibilityPrivate)

	likePath := fmt.Sprintf("/api/diaries/%d/like", publicID)

	t.Run("Like and unlike round trip", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, likePath, fan.AccessToken, nil)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/diaries/%d", publicID), fan.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[DiaryResponse](t, resp)
		assert.True(t, body.Liked)
		assert.Equal(t, 1, body.LikeCount)

		resp = doJSON(t, app, http.MethodDelete, likePath, fan.AccessToken, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Double like is a conflict", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, likePath, fan.AccessToken, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodPost, likePath, fan.AccessToken, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Unlike without a like is a conflict", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete,
			fmt.Sprintf("/api/diaries/%d/like", privateID), owner.AccessToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Hidden diary cannot be liked", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/diaries/%d/like", privateID), fan.AccessToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
