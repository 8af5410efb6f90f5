package analysis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/baiwei666/CineTrack/internal/model"
	"github.com/baiwei666/CineTrack/internal/stats"
)

// runMock produces a deterministic canned result after the simulated
// delay, so the UI path exercises the exact same shape and latency profile
// as a live provider.
func (o *Orchestrator) runMock(ctx context.Context, records []model.WatchRecord) model.AnalysisResult {
	select {
	case <-time.After(o.MockDelay):
	case <-ctx.Done():
	}

	st := stats.Compute(records, time.Now())
	favorite := stats.FavoriteKind(records)
	if favorite == "" {
		favorite = "未知"
	}
	avg, _ := strconv.ParseFloat(st.AvgRating, 64)
	style := "挑剔严苛"
	switch {
	case avg > 8.5:
		style = "慷慨激昂"
	case avg > 7:
		style = "理性客观"
	}

	return model.AnalysisResult{
		Keywords: []string{favorite + "鉴赏家", style, "本地模拟"},
		Analysis: fmt.Sprintf(
			"根据您最近的 %d 条观影记录，您对 %s 类型的影片表现出极高的忠诚度。您的平均评分为 %s，评分风格偏向%s。",
			st.Total, favorite, st.AvgRating, style),
		Recommendations: []model.Recommendation{
			{Title: "瞬息全宇宙", Reason: "脑洞与情感兼备，契合高分观众的口味。"},
			{Title: "真探 第一季", Reason: "叙事密度高的犯罪剧，适合喜欢严肃剧集的观众。"},
			{Title: "蜘蛛侠：纵横宇宙", Reason: "A24 风格之外的视觉实验，适合补充片单。"},
		},
	}
}
