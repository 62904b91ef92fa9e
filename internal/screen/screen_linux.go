//go:build linux

package screen

import (
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgbutil"

	"inputhook/internal/logging"
)

// platformBounds asks Xinerama for the head layout and falls back to the root window
// when the extension is missing or inactive.
func platformBounds() ([]bounds, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}
	defer xu.Conn().Close()

	if heads, err := xineramaBounds(xu); err == nil && len(heads) > 0 {
		return heads, nil
	} else if err != nil {
		logging.Debugf("screen: xinerama unavailable, using root window: %v", err)
	}

	root := xu.Screen()
	return []bounds{{
		width:  int64(root.WidthInPixels),
		height: int64(root.HeightInPixels),
	}}, nil
}

func xineramaBounds(xu *xgbutil.XUtil) ([]bounds, error) {
	if err := xinerama.Init(xu.Conn()); err != nil {
		return nil, err
	}
	active, err := xinerama.IsActive(xu.Conn()).Reply()
	if err != nil {
		return nil, err
	}
	if active.State == 0 {
		return nil, nil
	}
	reply, err := xinerama.QueryScreens(xu.Conn()).Reply()
	if err != nil {
		return nil, err
	}
	heads := make([]bounds, 0, len(reply.ScreenInfo))
	for _, s := range reply.ScreenInfo {
		heads = append(heads, bounds{
			x:      int64(s.XOrg),
			y:      int64(s.YOrg),
			width:  int64(s.Width),
			height: int64(s.Height),
		})
	}
	return heads, nil
}
