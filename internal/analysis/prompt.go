package analysis

import (
	"fmt"
	"strings"

	"github.com/baiwei666/CineTrack/internal/model"
)

type prompt struct {
	system string
	user   string
}

const systemPrompt = `你是一位资深的电影评论家和心理分析师。请根据用户提供的观影记录数据，分析用户的观影品味。

请只输出一个严格的 JSON 对象，不要包含任何其他文字或 Markdown 标记，格式如下：
{"keywords": ["概括品味的关键词"], "analysis": "对观影偏好的深度解析", "recommendations": [{"title": "推荐影片", "reason": "推荐理由"}]}

keywords 给 3-5 个；recommendations 推荐 3 部用户可能喜欢但尚未观看的影片。`

// buildPrompt embeds up to the first 30 records' title, rating, tags and
// director into the user message.
func buildPrompt(records []model.WatchRecord) prompt {
	n := len(records)
	if n > promptLimit {
		n = promptLimit
	}
	lines := make([]string, 0, n)
	for _, r := range records[:n] {
		director := r.Director
		if director == "" {
			director = "未知"
		}
		lines = append(lines, fmt.Sprintf("《%s》(%d) - 评分:%g/10, 类型:%s, 标签:[%s], 导演:%s",
			r.Title, r.ReleaseYear, r.PersonalRating, r.MediaKind, strings.Join(r.Tags, ", "), director))
	}
	return prompt{
		system: systemPrompt,
		user:   "这是我的观影记录列表：\n" + strings.Join(lines, "\n"),
	}
}
