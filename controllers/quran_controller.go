package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/miqra/miqra-server/quran"
	"github.com/miqra/miqra-server/utils"
)

// QuranController serves static corpus metadata. Everything here is public
// and effectively immutable, so responses cache aggressively.
type QuranController struct{}

// NewQuranController creates a new controller instance.
func NewQuranController() *QuranController {
	return &QuranController{}
}

// ListSurahs returns ayat counts for all 114 surahs.
func (q *QuranController) ListSurahs(ctx *gin.Context) {
	const cacheKey = "quran:surahs"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	items := make([]gin.H, 0, quran.SurahCount)
	for surah := 1; surah <= quran.SurahCount; surah++ {
		items = append(items, gin.H{
			"number":     surah,
			"ayat_count": quran.AyatCount(surah),
		})
	}
	payload := gin.H{
		"surah_count": quran.SurahCount,
		"ayat_total":  quran.TotalAyat,
		"items":       items,
	}

	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, 24*time.Hour)

	utils.Success(ctx, payload)
}

// GetSurah returns metadata for one surah.
func (q *QuranController) GetSurah(ctx *gin.Context) {
	surah, err := strconv.Atoi(ctx.Param("number"))
	if err != nil || !quran.ValidSurah(surah) {
		utils.Error(ctx, http.StatusBadRequest, 40026, "invalid surah number")
		return
	}
	utils.Success(ctx, gin.H{
		"number":     surah,
		"ayat_count": quran.AyatCount(surah),
	})
}
