package report

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"gbcompare/internal/service"
)

// ChartWidth is the number of points plotted; longer series are averaged down
const ChartWidth = 60

// HeartRateChart plots a heart rate series. Series of fewer than three
// points render as an empty string.
func HeartRateChart(points []service.HeartRatePoint) string {
	data := make([]float64, len(points))
	for i, p := range points {
		data[i] = float64(p.HeartRate)
	}
	if len(data) > ChartWidth {
		data = downsample(data, ChartWidth)
	}
	if len(data) <= 2 {
		return ""
	}

	caption := fmt.Sprintf("Heart rate (bpm) %s - %s",
		points[0].Time.Format("15:04"), points[len(points)-1].Time.Format("15:04"))
	return asciigraph.Plot(data,
		asciigraph.Height(8),
		asciigraph.Width(ChartWidth),
		asciigraph.Caption(caption),
	)
}

// downsample averages data into targetLen buckets, ignoring zero readings
func downsample(data []float64, targetLen int) []float64 {
	if len(data) <= targetLen {
		return data
	}

	result := make([]float64, targetLen)
	ratio := float64(len(data)) / float64(targetLen)

	for i := 0; i < targetLen; i++ {
		start := int(float64(i) * ratio)
		end := int(float64(i+1) * ratio)
		if end > len(data) {
			end = len(data)
		}

		sum := 0.0
		count := 0
		for j := start; j < end; j++ {
			if data[j] > 0 {
				sum += data[j]
				count++
			}
		}
		if count > 0 {
			result[i] = sum / float64(count)
		}
	}

	return result
}
