// Package links 构造 eBird 的物种/分布图/季节图 URL。
// 坐标与州参数针对弗吉尼亚（US-VA）固定，与既有出版物保持一致。
package links

import "fmt"

const (
	// Region 是名录覆盖的 eBird 区域代码。
	Region = "US-VA"

	// 弗吉尼亚及其近海的包络框（分布图用）。
	bbox = "env.minX=-84.70&env.minY=36.20&env.maxX=-70.95&env.maxY=37.22"
)

// Species 返回物种账户页 URL（按区域）。
func Species(speciesCode string) string {
	return fmt.Sprintf("https://ebird.org/species/%s/%s", speciesCode, Region)
}

// Map 返回空间分布图 URL。
func Map(speciesCode string) string {
	return fmt.Sprintf(
		"http://ebird.org/ebird/map/%s?neg=true&%s&zh=true&gp=true&ev=Z&mr=1-12&bmo=1&emo=12&yr=all&getLocations=states&states=%s",
		speciesCode, bbox, Region,
	)
}

// Chart 返回数量与季节性图表 URL。
func Chart(speciesCode string) string {
	return fmt.Sprintf(
		"http://ebird.org/ebird/GuideMe?cmd=decisionPage&speciesCodes=%s&getLocations=states&states=%s&bYear=1900&eYear=Cur&bMonth=1&eMonth=12&reportType=species&parentState=%s",
		speciesCode, Region, Region,
	)
}
