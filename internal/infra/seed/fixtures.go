// Package seed monta os dados fixos carregados no início de cada sessão.
package seed

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/memory"
)

// DemoPassword é a senha única dos usuários de demonstração.
const DemoPassword = "123456"

// Load semeia o Store relativo a "now".
func Load(store *memory.Store, now time.Time) error {
	users, err := Users()
	if err != nil {
		return err
	}
	store.Load(memory.Snapshot{
		Prospects:     Prospects(now),
		Tasks:         Tasks(now),
		Contacts:      Contacts(now),
		Templates:     Templates(now),
		Notifications: Notifications(now),
		Users:         users,
	})
	return nil
}

func ago(now time.Time, d time.Duration) time.Time { return now.Add(-d) }
func ahead(now time.Time, d time.Duration) time.Time { return now.Add(d) }
func ptr(t time.Time) *time.Time { return &t }

const (
	hour = time.Hour
	day  = 24 * time.Hour
)

func Prospects(now time.Time) []entity.Prospect {
	type row struct {
		name, email, phone string
		status             entity.ProspectStatus
		product, source    string
		created            time.Duration
		lastContact        time.Duration
		notes              string
	}
	rows := []row{
		{"María López García", "maria.lopez@example.com", "+591 67234567", entity.ProspectNegociacion, "Netflix Premium", "Facebook", 5 * day, day, "Interesada en plan familiar. Tiene 3 hijos adolescentes."},
		{"Carlos Rodríguez Silva", "carlos.rodriguez@example.com", "+591 78345678", entity.ProspectContactado, "Disney+ Anual", "Instagram", 3 * day, 48 * hour, "Pidió información sobre contenido disponible para niños."},
		{"Ana Martínez Fernández", "ana.martinez@example.com", "+591 69456789", entity.ProspectNuevo, "HBO Max", "TikTok", 12 * hour, 0, ""},
		{"Javier Sánchez Morales", "javier.sanchez@example.com", "+591 76567890", entity.ProspectGanado, "Combo Streaming", "Referido", 10 * day, day, "Cliente satisfecho. Posible fuente de referidos."},
		{"Laura Gómez Herrera", "laura.gomez@example.com", "+591 67678901", entity.ProspectEnConversacion, "Amazon Prime", "WhatsApp", 2 * day, 4 * hour, "Interesada principalmente en envíos gratis. Preguntó por Prime Video."},
		{"Miguel Torres Jiménez", "miguel.torres@example.com", "+591 78789012", entity.ProspectPerdido, "Netflix Básico", "Facebook", 15 * day, 5 * day, "Decidió no contratar por precio. Posible recontacto en 3 meses."},
		{"Carmen Ruiz Vega", "carmen.ruiz@example.com", "+591 69890123", entity.ProspectNuevo, "Disney+ Mensual", "Instagram", 6 * hour, 0, ""},
		{"David Fernández Castro", "david.fernandez@example.com", "+591 76901234", entity.ProspectContactado, "HBO Max", "TikTok", 4 * day, day, "Fan de series. Interesado en contenido exclusivo de HBO."},
		{"Elena Díaz Romero", "elena.diaz@example.com", "+591 67012345", entity.ProspectEnConversacion, "Combo Streaming", "Referido", 7 * day, 12 * hour, "Comparando precios con la competencia. Enviar promoción especial."},
		{"Pablo Moreno Delgado", "pablo.moreno@example.com", "+591 78123456", entity.ProspectNegociacion, "Amazon Prime", "WhatsApp", 6 * day, 2 * hour, "Negociando descuento por suscripción anual. Muy interesado."},
		{"Sofía Navarro Mendoza", "sofia.navarro@example.com", "+591 69234567", entity.ProspectGanado, "Netflix Premium", "Facebook", 12 * day, 2 * day, "Cliente satisfecho. Recomendar programa de referidos."},
		{"Alejandro Vega Ruiz", "alejandro.vega@example.com", "+591 76345678", entity.ProspectPerdido, "Disney+ Anual", "Instagram", 20 * day, 8 * day, "Encontró mejor oferta con la competencia."},
	}

	out := make([]entity.Prospect, 0, len(rows))
	for i, r := range rows {
		p := entity.Prospect{
			ID:        fmt.Sprintf("prospect-%d", i+1),
			Name:      r.name,
			Email:     r.email,
			Phone:     r.phone,
			Status:    r.status,
			Product:   r.product,
			Source:    r.source,
			Notes:     r.notes,
			CreatedAt: ago(now, r.created),
			Version:   1,
		}
		if r.lastContact > 0 {
			p.LastContactDate = ptr(ago(now, r.lastContact))
		}
		out = append(out, p)
	}
	return out
}

func Tasks(now time.Time) []entity.Task {
	const assignee = "Juan Pérez"
	type row struct {
		title, description string
		status             entity.TaskStatus
		priority           entity.TaskPriority
		due                time.Time
		created            time.Duration
		prospect           int
		prospectName       string
	}
	rows := []row{
		{"Llamar a María López", "Seguimiento sobre interés en plan familiar Netflix Premium", entity.TaskPendiente, entity.PriorityAlta, ahead(now, 2*hour), day, 1, "María López García"},
		{"Enviar información a Carlos Rodríguez", "Detalles sobre contenido infantil en Disney+", entity.TaskCompletada, entity.PriorityMedia, ago(now, 12*hour), 2 * day, 2, "Carlos Rodríguez Silva"},
		{"Contactar a Ana Martínez", "Primer contacto para presentar HBO Max", entity.TaskPendiente, entity.PriorityAlta, ahead(now, hour), 6 * hour, 3, "Ana Martínez Fernández"},
		{"Seguimiento a Javier Sánchez", "Verificar satisfacción con Combo Streaming", entity.TaskEnProgreso, entity.PriorityBaja, ahead(now, 2*day), day, 4, "Javier Sánchez Morales"},
		{"Enviar promoción a Laura Gómez", "Oferta especial de Amazon Prime", entity.TaskVencida, entity.PriorityMedia, ago(now, day), 3 * day, 5, "Laura Gómez Herrera"},
		{"Recontactar a Miguel Torres", "Ofrecer plan con descuento", entity.TaskPendiente, entity.PriorityBaja, ahead(now, 30*day), 5 * day, 6, "Miguel Torres Jiménez"},
		{"Llamar a Carmen Ruiz", "Primer contacto para Disney+ Mensual", entity.TaskPendiente, entity.PriorityAlta, ahead(now, 4*hour), 2 * hour, 7, "Carmen Ruiz Vega"},
		{"Enviar información a David Fernández", "Detalles sobre series exclusivas en HBO Max", entity.TaskEnProgreso, entity.PriorityMedia, ahead(now, 8*hour), day, 8, "David Fernández Castro"},
		{"Preparar oferta para Elena Díaz", "Promoción especial de Combo Streaming", entity.TaskPendiente, entity.PriorityAlta, ahead(now, 3*hour), 12 * hour, 9, "Elena Díaz Romero"},
		{"Negociar con Pablo Moreno", "Descuento por suscripción anual a Amazon Prime", entity.TaskEnProgreso, entity.PriorityAlta, ahead(now, hour), 6 * hour, 10, "Pablo Moreno Delgado"},
		{"Seguimiento a Sofía Navarro", "Presentar programa de referidos", entity.TaskPendiente, entity.PriorityMedia, ahead(now, day), 2 * day, 11, "Sofía Navarro Mendoza"},
		{"Analizar caso de Alejandro Vega", "Revisar por qué se perdió el cliente", entity.TaskCompletada, entity.PriorityBaja, ago(now, 3*day), 7 * day, 12, "Alejandro Vega Ruiz"},
	}

	out := make([]entity.Task, 0, len(rows))
	for i, r := range rows {
		out = append(out, entity.Task{
			ID:          fmt.Sprintf("task-%d", i+1),
			Title:       r.title,
			Description: r.description,
			Status:      r.status,
			Priority:    r.priority,
			DueDate:     r.due,
			CreatedAt:   ago(now, r.created),
			AssignedTo:  assignee,
			RelatedTo: &entity.RelatedRef{
				Kind: entity.RelatedProspect,
				ID:   fmt.Sprintf("prospect-%d", r.prospect),
				Name: r.prospectName,
			},
			Version: 1,
		})
	}
	return out
}

func Notifications(now time.Time) []entity.Notification {
	return []entity.Notification{
		{ID: "notification-1", Type: entity.NotificationProspect, Title: "Nuevo prospecto registrado", Description: "Ana Martínez se ha registrado como nuevo prospecto para HBO Max.", Timestamp: ago(now, 12*hour), Link: "/prospectos"},
		{ID: "notification-2", Type: entity.NotificationTask, Title: "Tarea vencida", Description: "La tarea 'Enviar promoción a Laura Gómez' ha vencido.", Timestamp: ago(now, day), Read: true, Link: "/tareas"},
		{ID: "notification-3", Type: entity.NotificationMessage, Title: "Nuevo mensaje", Description: "María López ha respondido a tu último mensaje.", Timestamp: ago(now, 30*time.Minute), Link: "/comunicaciones"},
		{ID: "notification-4", Type: entity.NotificationSystem, Title: "Actualización del sistema", Description: "El CRM se ha actualizado a la versión 2.1.0.", Timestamp: ago(now, 48*hour), Read: true},
		{ID: "notification-5", Type: entity.NotificationProspect, Title: "Prospecto ganado", Description: "Javier Sánchez ha contratado el Combo Streaming.", Timestamp: ago(now, day), Link: "/prospectos"},
		{ID: "notification-6", Type: entity.NotificationTask, Title: "Nueva tarea asignada", Description: "Se te ha asignado la tarea 'Llamar a Carmen Ruiz'.", Timestamp: ago(now, 2*hour), Link: "/tareas"},
		{ID: "notification-7", Type: entity.NotificationMessage, Title: "Nuevo mensaje", Description: "Laura Gómez ha enviado un nuevo mensaje.", Timestamp: ago(now, 15*time.Minute), Link: "/comunicaciones"},
	}
}

func Templates(now time.Time) []entity.MessageTemplate {
	rows := []struct{ name, content, category string }{
		{"Bienvenida", "Hola [Nombre], gracias por tu interés en nuestros servicios de streaming. Estamos encantados de poder ayudarte a encontrar la mejor opción para ti. ¿En qué servicio estás más interesado?", "general"},
		{"Seguimiento", "Hola [Nombre], ¿qué tal va todo? Solo quería hacer un seguimiento de nuestra conversación anterior sobre [Producto]. ¿Has tenido tiempo de revisar la información que te envié?", "seguimiento"},
		{"Información de precios", "Respecto a los precios de [Producto], actualmente tenemos las siguientes opciones:\n\n- Plan Mensual: €XX.XX\n- Plan Anual: €XX.XX (ahorro del XX%)\n\n¿Cuál te interesaría más?", "ventas"},
		{"Promoción especial", "¡Tenemos una promoción especial para ti! Si te suscribes a [Producto] antes del [Fecha], obtendrás un 20% de descuento en los primeros 3 meses. ¿Te gustaría aprovechar esta oferta?", "promociones"},
		{"Confirmación de compra", "¡Excelente noticia, [Nombre]! Tu suscripción a [Producto] ha sido activada correctamente. Puedes comenzar a disfrutar del servicio de inmediato. Si tienes alguna pregunta, no dudes en contactarnos.", "confirmaciones"},
		{"Recordatorio de pago", "Hola [Nombre], te recordamos que tu próximo pago de [Producto] vence el [Fecha]. Asegúrate de tener tu método de pago actualizado para evitar interrupciones en el servicio.", "pagos"},
		{"Solicitud de feedback", "Hola [Nombre], esperamos que estés disfrutando de tu suscripción a [Producto]. Nos encantaría conocer tu opinión sobre el servicio. ¿Podrías dedicar unos minutos a responder algunas preguntas?", "feedback"},
	}

	out := make([]entity.MessageTemplate, 0, len(rows))
	for i, r := range rows {
		out = append(out, entity.MessageTemplate{
			ID:        fmt.Sprintf("template-%d", i+1),
			Name:      r.name,
			Content:   r.content,
			Category:  r.category,
			Channel:   entity.ChannelWhatsApp,
			CreatedAt: ago(now, 30*day),
		})
	}
	return out
}

func Contacts(now time.Time) []entity.Contact {
	msg := func(id int, content string, sender entity.MessageSender, at time.Duration) entity.Message {
		return entity.Message{
			ID:        fmt.Sprintf("msg-%d", id),
			Content:   content,
			Sender:    sender,
			Timestamp: ago(now, at),
			Status:    entity.MessageRead,
			Channel:   entity.ChannelWhatsApp,
		}
	}
	u, c := entity.SenderUser, entity.SenderContact

	contacts := []entity.Contact{
		{
			ID: "contact-1", Name: "María López García", Email: "maria.lopez@example.com", Phone: "+591 67234567",
			Status: entity.ProspectNegociacion, Product: "Netflix Premium", Source: "Facebook", Online: true, UnreadCount: 3,
			Messages: []entity.Message{
				msg(1, "Hola María, ¿cómo estás? Vi que estabas interesada en nuestro plan Netflix Premium.", u, 2*hour),
				msg(2, "Hola, sí estoy interesada. ¿Podrías darme más información sobre los precios?", c, hour),
				msg(3, "Claro, el plan Netflix Premium tiene un costo de €15.99 al mes y permite hasta 4 pantallas simultáneas en calidad 4K.", u, 45*time.Minute),
				msg(4, "¿Cuándo podríamos agendar una llamada?", c, 30*time.Minute),
			},
			Notes: "Cliente muy interesado en el plan familiar. Tiene 3 hijos adolescentes. Prefiere comunicación por WhatsApp. Mejor horario para contactar: tardes.",
		},
		{
			ID: "contact-2", Name: "Carlos Rodríguez Silva", Email: "carlos.rodriguez@example.com", Phone: "+591 78345678",
			Status: entity.ProspectContactado, Product: "Disney+ Anual", Source: "Instagram",
			Messages: []entity.Message{
				msg(5, "Hola Carlos, te escribo respecto a tu interés en nuestro plan Disney+ Anual.", u, 5*hour),
				msg(6, "Hola, sí me interesa. ¿Cuál es el precio?", c, 4*hour),
				msg(7, "El plan anual de Disney+ tiene un costo de €89.90, lo que representa un ahorro del 15% comparado con el plan mensual.", u, 210*time.Minute),
				msg(8, "Gracias por la información, lo pensaré.", c, 3*hour),
			},
			Notes: "Interesado en contenido infantil. Recibió información sobre Disney+. No ha tomado una decisión aún.",
		},
		{
			ID: "contact-3", Name: "Ana Martínez Fernández", Email: "ana.martinez@example.com", Phone: "+591 69456789",
			Status: entity.ProspectNuevo, Product: "HBO Max", Source: "TikTok", Online: true, UnreadCount: 1,
			Messages: []entity.Message{
				msg(9, "¡Hola! Me interesa saber más sobre HBO Max", c, 10*time.Minute),
			},
			Notes: "Primer contacto. Interesada en HBO Max. Prefiere comunicación por WhatsApp.",
		},
		{
			ID: "contact-4", Name: "Javier Sánchez Morales", Email: "javier.sanchez@example.com", Phone: "+591 76567890",
			Status: entity.ProspectGanado, Product: "Combo Streaming", Source: "Referido",
			Messages: []entity.Message{
				msg(10, "Hola Javier, ¿cómo va todo con tu suscripción al Combo Streaming?", u, 25*hour),
				msg(11, "¡Todo excelente! Estoy muy contento con el servicio.", c, 1470*time.Minute),
				msg(12, "Me alegra mucho escuchar eso. Recuerda que tu próximo pago vence en 5 días.", u, 1452*time.Minute),
				msg(13, "¡Perfecto! Ya realicé el pago. Gracias por todo.", c, 24*hour),
			},
			Notes: "Cliente satisfecho con Combo Streaming. Posible fuente de referidos.",
		},
		{
			ID: "contact-5", Name: "Laura Gómez Herrera", Email: "laura.gomez@example.com", Phone: "+591 67678901",
			Status: entity.ProspectEnConversacion, Product: "Amazon Prime", Source: "WhatsApp", Online: true, UnreadCount: 2,
			Messages: []entity.Message{
				msg(14, "Hola Laura, gracias por contactarnos sobre Amazon Prime.", u, hour),
				msg(15, "Hola, me gustaría saber más sobre los beneficios de Amazon Prime.", c, 55*time.Minute),
				msg(16, "Amazon Prime incluye envíos gratis, Prime Video, Prime Music y más por solo €4.99 al mes o €49.90 al año.", u, 50*time.Minute),
				msg(17, "Suena interesante. ¿Puedo compartir la cuenta con mi familia?", c, 45*time.Minute),
				msg(18, "Sí, puedes compartir los beneficios de Prime con hasta 2 adultos y 4 niños en tu hogar sin costo adicional.", u, 40*time.Minute),
				msg(19, "¿Tienen alguna promoción especial este mes?", c, 15*time.Minute),
			},
			Notes: "Interesada en envíos gratis y Prime Video. Prefiere comunicación por WhatsApp.",
		},
	}

	for i := range contacts {
		last := contacts[i].Messages[len(contacts[i].Messages)-1]
		contacts[i].LastMessage = &entity.MessageSummary{Content: last.Content, Timestamp: last.Timestamp}
	}
	return contacts
}

// Users devolve os usuários de demonstração com o hash bcrypt da DemoPassword.
func Users() ([]entity.Credential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar hash da senha demo: %w", err)
	}
	users := []entity.User{
		{ID: "1", Name: "Juan Pérez", Email: "admin@crm.com", Role: entity.RoleAdmin},
		{ID: "2", Name: "María García", Email: "manager@crm.com", Role: entity.RoleManager},
		{ID: "3", Name: "Carlos López", Email: "agent@crm.com", Role: entity.RoleAgent},
		{ID: "4", Name: "Miguel Peinado", Email: "futurodecano@crm.com", Role: entity.RoleAdmin, Avatar: "/images/miguel-avatar.png"},
	}
	out := make([]entity.Credential, 0, len(users))
	for _, u := range users {
		out = append(out, entity.Credential{User: u, PasswordHash: hash})
	}
	return out, nil
}
