// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "Wardrobe-Go")
	viper.SetDefault("main.user", "default")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "wardrobe.log")

	viper.SetDefault("vision.debug", false)
	viper.SetDefault("vision.credentialsfile", "")
	viper.SetDefault("vision.minobjectconfidence", 0.4)
	viper.SetDefault("vision.maxdominantcolors", 5)
	viper.SetDefault("vision.enablewebdetection", true)

	viper.SetDefault("analysis.matchthreshold", 60)
	viper.SetDefault("analysis.duplicatesimilarity", 0.7)

	viper.SetDefault("imageproc.iouthreshold", 0.3)
	viper.SetDefault("imageproc.croppadding", 0.10)
	viper.SetDefault("imageproc.cropquality", 90)

	viper.SetDefault("session.ttl", 30*time.Minute)
	viper.SetDefault("session.cleanupinterval", 10*time.Minute)

	viper.SetDefault("storage.uploadpath", "uploads/")
	viper.SetDefault("storage.temppath", "uploads/temp/")
	viper.SetDefault("storage.croppath", "uploads/crops/")
	viper.SetDefault("storage.outfitpath", "uploads/outfits/")

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "wardrobe.db")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "wardrobe")
	viper.SetDefault("output.mysql.password", "secret")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")
	viper.SetDefault("output.mysql.database", "wardrobe")
}
