package dnacenter

import "dnabot/models"

const helpMessage = `
Try one of the following commands:

ASSURANCE:

show network health Send an image displaying the current network health status
show network health at <date/time> Shows network health status for given date or time.  Most formats accepted

Examples:
show network health at 06:21 will show health from today at 06:21
show network health on Jan 1 at 18:00 will show health from January 1st at 18:00

All times and dates are local to the timezone where this bot is running.

INVENTORY
get inventory Attach a CSV file with the network inventory

SOFTWARE IMAGES
show software images List available software images
show software platforms Show available platforms for software images
show software images for <platform> Show images available for <platform>
show software recommended image for <platform> Show recommended CCO images for <platform>
show software cco image for <platform> Shorter command to show recommended CCO images for <platform>
`

const helpMessageRich = `
Try one of the following commands:

***ASSURANCE:***

**show network health** Send an image displaying the current network health status

**show network health at *date/time*** Shows network health status for given date or time.  Most formats accepted

*Examples:*

*show network health at 06:21* will show health from today at 06:21

*show network health on Jan 1 at 18:00* will show health from January 1st at 18:00

All times and dates are local to the timezone where this bot is running.

***INVENTORY***

**get inventory** Attach a CSV file with the network inventory

***SOFTWARE IMAGES***

**show software images** List available software images

**show software platforms** Show available platforms for software images

**show software images for *platform*** Show images available for *platform*

**show software recommended image for *platform*:** Show recommended CCO images for *platform*

**show software cco image for *platform*:** Shorter command to show recommended CCO images for *platform*
`

// HelpResponse lists every supported command
func HelpResponse() *models.ResponseEnvelope {
	return models.NewMessageResponse(helpMessage, helpMessageRich)
}
