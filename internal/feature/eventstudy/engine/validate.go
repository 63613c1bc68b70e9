package engine

import (
	"fmt"

	"seasonality_backend/internal/feature/eventstudy/domain/entity"
)

// ReasonMissingT0 はT0バー欠落の除外理由です。
const ReasonMissingT0 = "Missing T0 (event day)"

// ValidateWindows はトレード要件に対するウィンドウの完全性を検査し、
// 有効性を確定した新しいスライスを返します。入力は変更しません。
//
// 検査は順に行い、最初の失敗で打ち切ります。ビルダー段階で既に無効な
// ウィンドウは理由を保持したまま素通しします。
func ValidateWindows(windows []entity.EventWindow, cfg WindowConfig, entry EntrySpec, exitDay int) []entity.EventWindow {
	out := make([]entity.EventWindow, len(windows))
	for i, w := range windows {
		out[i] = validateWindow(w, cfg, entry, exitDay)
	}
	return out
}

func validateWindow(w entity.EventWindow, cfg WindowConfig, entry EntrySpec, exitDay int) entity.EventWindow {
	if !w.IsValid {
		return w
	}
	if _, ok := w.BarAt(0); !ok {
		return excluded(w, ReasonMissingT0)
	}
	if _, ok := w.BarAt(entry.RelativeDay); !ok {
		return excluded(w, fmt.Sprintf("Missing entry day (%s)", entry.Source))
	}
	if _, ok := w.BarAt(exitDay); !ok {
		return excluded(w, fmt.Sprintf("Missing exit day (T+%d)", exitDay))
	}
	if len(w.Bars) != cfg.Width() {
		return excluded(w, fmt.Sprintf("Incomplete window: has %d days, needs %d", len(w.Bars), cfg.Width()))
	}
	return w
}

func excluded(w entity.EventWindow, reason string) entity.EventWindow {
	w.IsValid = false
	w.ExclusionReason = reason
	return w
}

// ValidOnly は有効なウィンドウのみを抽出します。
func ValidOnly(windows []entity.EventWindow) []entity.EventWindow {
	out := make([]entity.EventWindow, 0, len(windows))
	for _, w := range windows {
		if w.IsValid {
			out = append(out, w)
		}
	}
	return out
}

// CountExclusions は無効なウィンドウを理由別に集計します。
func CountExclusions(windows []entity.EventWindow) map[string]int {
	counts := make(map[string]int)
	for _, w := range windows {
		if !w.IsValid {
			counts[w.ExclusionReason]++
		}
	}
	return counts
}
